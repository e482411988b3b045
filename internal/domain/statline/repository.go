package statline

import (
	"context"
	"time"
)

// SyncResult reports what an upsert batch did to the store.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
}

func (r SyncResult) Merge(other SyncResult) SyncResult {
	return SyncResult{
		Created: r.Created + other.Created,
		Updated: r.Updated + other.Updated,
		Deleted: r.Deleted + other.Deleted,
	}
}

// Repository persists day- and week-level stat records. All writes are
// upserts matched by natural key; ids survive updates and every write stamps
// UpdatedAt (CreatedAt on first insert only).
type Repository interface {
	ListPlayerDaysByTeamAndDate(ctx context.Context, teamID string, date time.Time) ([]PlayerDayRecord, error)
	ListPlayerDaysByWeek(ctx context.Context, weekID string) ([]PlayerDayRecord, error)
	// UpsertPlayerDays writes the batch keyed by (PlayerID, TeamID, Date).
	// With deleteMissing, rows for the same (teamID, date) absent from the
	// batch are removed; the scope is never wider than that single date.
	UpsertPlayerDays(ctx context.Context, teamID string, date time.Time, rows []PlayerDayRecord, deleteMissing bool) (SyncResult, error)

	ListTeamDaysByWeek(ctx context.Context, weekID string) ([]TeamDayRecord, error)
	UpsertTeamDay(ctx context.Context, row TeamDayRecord) (SyncResult, error)

	ListTeamWeeksByWeek(ctx context.Context, weekID string) ([]TeamWeekRecord, error)
	UpsertTeamWeeks(ctx context.Context, rows []TeamWeekRecord) (SyncResult, error)

	ListPlayerWeeksByWeek(ctx context.Context, weekID string) ([]PlayerWeekRecord, error)
	UpsertPlayerWeeks(ctx context.Context, rows []PlayerWeekRecord) (SyncResult, error)
}
