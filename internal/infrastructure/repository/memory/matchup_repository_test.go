package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
)

func TestMatchupUpsertPreservesID(t *testing.T) {
	t.Parallel()

	repo := NewMatchupRepository(SeedMatchups(), nil)
	ctx := context.Background()

	stored, err := repo.ListByWeek(ctx, SeedSeasonID, "2526-w01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("seeded week-one matchups = %d, want 3", len(stored))
	}

	target := stored[0]
	target.HomeScore = 6
	target.AwayScore = 4
	// An upsert never carries the id; the natural key finds the row.
	target.ID = ""
	if err := repo.Upsert(ctx, target); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	after, err := repo.ListByWeek(ctx, SeedSeasonID, "2526-w01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var updated matchup.Matchup
	for _, m := range after {
		if m.Key() == target.Key() {
			updated = m
		}
	}
	if updated.ID != stored[0].ID {
		t.Fatalf("id changed across upserts: %s -> %s", stored[0].ID, updated.ID)
	}
	if updated.HomeScore != 6 || updated.AwayScore != 4 {
		t.Fatalf("scores = %d-%d, want 6-4", updated.HomeScore, updated.AwayScore)
	}
}

func TestMatchupUpsertGeneratesID(t *testing.T) {
	t.Parallel()

	repo := NewMatchupRepository(nil, nil)
	ctx := context.Background()

	m := matchup.Matchup{
		SeasonID:   SeedSeasonID,
		WeekID:     "2526-w04",
		HomeTeamID: "hl-bearcats",
		AwayTeamID: "hl-zephyrs",
	}
	if err := repo.Upsert(ctx, m); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := repo.ListByWeek(ctx, SeedSeasonID, "2526-w04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].ID == "" {
		t.Fatalf("stored = %+v, want one row with a generated id", stored)
	}
	if stored[0].CreatedAt.IsZero() || stored[0].UpdatedAt.IsZero() {
		t.Fatal("timestamps must be stamped on insert")
	}
}

func TestMatchupListByWeekSorted(t *testing.T) {
	t.Parallel()

	repo := NewMatchupRepository(SeedMatchups(), nil)
	stored, err := repo.ListByWeek(context.Background(), SeedSeasonID, "2526-w02")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(stored); i++ {
		prev, cur := stored[i-1], stored[i]
		if prev.HomeTeamID > cur.HomeTeamID {
			t.Fatalf("rows out of order: %s before %s", prev.HomeTeamID, cur.HomeTeamID)
		}
	}
}
