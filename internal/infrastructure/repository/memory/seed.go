package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
)

const SeedSeasonID int64 = 7

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeedSeasonID,
			Name:      "2025-26",
			StartDate: day(2025, time.October, 6),
			EndDate:   day(2026, time.April, 12),
		},
	}
}

func SeedWeeks() []season.Week {
	weeks := make([]season.Week, 0, 26)
	start := day(2025, time.October, 6)
	for number := 1; number <= 26; number++ {
		weeks = append(weeks, season.Week{
			ID:        weekID(number),
			SeasonID:  SeedSeasonID,
			Number:    number,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
		})
		start = start.AddDate(0, 0, 7)
	}
	return weeks
}

func weekID(number int) string {
	return fmt.Sprintf("2526-w%02d", number)
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "hl-bearcats", SeasonID: SeedSeasonID, Name: "Bakersfield Bearcats", Owner: "Marty", Abbrev: "BKR"},
		{ID: "hl-icehogs", SeasonID: SeedSeasonID, Name: "Ironwood Icehogs", Owner: "Dana", Abbrev: "IWI"},
		{ID: "hl-nordiques", SeasonID: SeedSeasonID, Name: "New Norfolk Nordiques", Owner: "Priya", Abbrev: "NNN"},
		{ID: "hl-rustbelt", SeasonID: SeedSeasonID, Name: "Rustbelt Rovers", Owner: "Coop", Abbrev: "RBR"},
		{ID: "hl-sledders", SeasonID: SeedSeasonID, Name: "Saginaw Sledders", Owner: "Alex", Abbrev: "SAG"},
		{ID: "hl-zephyrs", SeasonID: SeedSeasonID, Name: "Zanesville Zephyrs", Owner: "Jo", Abbrev: "ZAN"},
	}
}

// SeedMatchups pairs the six seed teams round-robin style for the first three
// weeks. Scores start at zero; the pipeline fills them in.
func SeedMatchups() []matchup.Matchup {
	pairings := [][2]string{
		{"hl-bearcats", "hl-icehogs"},
		{"hl-nordiques", "hl-rustbelt"},
		{"hl-sledders", "hl-zephyrs"},
		{"hl-bearcats", "hl-nordiques"},
		{"hl-icehogs", "hl-sledders"},
		{"hl-rustbelt", "hl-zephyrs"},
		{"hl-bearcats", "hl-sledders"},
		{"hl-icehogs", "hl-zephyrs"},
		{"hl-nordiques", "hl-sledders"},
	}

	out := make([]matchup.Matchup, 0, len(pairings))
	for i, pair := range pairings {
		out = append(out, matchup.Matchup{
			ID:         fmt.Sprintf("mx-%d", i+1),
			SeasonID:   SeedSeasonID,
			WeekID:     weekID(i/3 + 1),
			HomeTeamID: pair[0],
			AwayTeamID: pair[1],
		})
	}
	return out
}
