package matchup

import "context"

type Repository interface {
	ListByWeek(ctx context.Context, seasonID int64, weekID string) ([]Matchup, error)
	// Upsert matches by (WeekID, HomeTeamID, AwayTeamID); the stored id is
	// preserved across updates.
	Upsert(ctx context.Context, m Matchup) error
}
