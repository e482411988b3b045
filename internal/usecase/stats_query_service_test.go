package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/memory"
)

func newStatsQueryFixture() (*StatsQueryService, *memory.StatlineRepository) {
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedWeeks())
	statsRepo := memory.NewStatlineRepository()
	matchupRepo := memory.NewMatchupRepository(memory.SeedMatchups(), nil)
	return NewStatsQueryService(seasonRepo, statsRepo, matchupRepo), statsRepo
}

func TestStatsQueryUnknownWeek(t *testing.T) {
	t.Parallel()

	svc, _ := newStatsQueryFixture()
	ctx := context.Background()

	if _, err := svc.TeamWeeks(ctx, "9999-w01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("TeamWeeks err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Matchups(ctx, "9999-w01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Matchups err = %v, want ErrNotFound", err)
	}
}

func TestStatsQueryReadsStoredRows(t *testing.T) {
	t.Parallel()

	svc, statsRepo := newStatsQueryFixture()
	ctx := context.Background()

	_, err := statsRepo.UpsertTeamWeeks(ctx, []statline.TeamWeekRecord{
		{TeamID: "hl-bearcats", SeasonID: memory.SeedSeasonID, WeekID: "2526-w01", Stats: statline.Stats{"G": statline.Of(4)}},
	})
	if err != nil {
		t.Fatalf("seed team weeks: %v", err)
	}

	rows, err := svc.TeamWeeks(ctx, "2526-w01")
	if err != nil {
		t.Fatalf("TeamWeeks: %v", err)
	}
	if len(rows) != 1 || rows[0].TeamID != "hl-bearcats" {
		t.Fatalf("rows = %+v", rows)
	}

	matchups, err := svc.Matchups(ctx, "2526-w01")
	if err != nil {
		t.Fatalf("Matchups: %v", err)
	}
	if len(matchups) != 3 {
		t.Fatalf("matchups = %d, want the 3 seeded week-one pairings", len(matchups))
	}
}

func TestStatsQueryEmptyWeekIsEmptyNotError(t *testing.T) {
	t.Parallel()

	svc, _ := newStatsQueryFixture()
	rows, err := svc.PlayerWeeks(context.Background(), "2526-w05")
	if err != nil {
		t.Fatalf("PlayerWeeks: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
