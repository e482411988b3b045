package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

// StatlineRepository persists day- and week-level stat records. All writes
// are upserts matched on the natural key; the surrogate id and created_at
// survive updates and updated_at is stamped on every write.
type StatlineRepository struct {
	db *sqlx.DB
}

func NewStatlineRepository(db *sqlx.DB) *StatlineRepository {
	return &StatlineRepository{db: db}
}

var playerDayColumns = []string{
	"id", "player_public_id", "player_name", "team_public_id", "season_id",
	"week_public_id", "stat_date", "position_group", "best_pos", "full_pos",
	"added", "missed_start", "bench_start", "stats", "rating",
	"created_at", "updated_at",
}

const playerDayUpsertSuffix = `ON CONFLICT (player_public_id, team_public_id, stat_date)
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    season_id = EXCLUDED.season_id,
    week_public_id = EXCLUDED.week_public_id,
    position_group = EXCLUDED.position_group,
    best_pos = EXCLUDED.best_pos,
    full_pos = EXCLUDED.full_pos,
    added = EXCLUDED.added,
    missed_start = EXCLUDED.missed_start,
    bench_start = EXCLUDED.bench_start,
    stats = EXCLUDED.stats,
    rating = EXCLUDED.rating,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

func (r *StatlineRepository) ListPlayerDaysByTeamAndDate(ctx context.Context, teamID string, date time.Time) ([]statline.PlayerDayRecord, error) {
	query, args, err := qb.Select(playerDayColumns...).
		From("player_day_stats").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("stat_date", date),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player days by team and date query: %w", err)
	}

	var rows []playerDayRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player days by team and date: %w", err)
	}

	out := make([]statline.PlayerDayRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list player days by team and date: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *StatlineRepository) ListPlayerDaysByWeek(ctx context.Context, weekID string) ([]statline.PlayerDayRecord, error) {
	query, args, err := qb.Select(playerDayColumns...).
		From("player_day_stats").
		Where(qb.Eq("week_public_id", weekID)).
		OrderBy("team_public_id", "player_public_id", "stat_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player days by week query: %w", err)
	}

	var rows []playerDayRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player days by week: %w", err)
	}

	out := make([]statline.PlayerDayRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list player days by week: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *StatlineRepository) UpsertPlayerDays(ctx context.Context, teamID string, date time.Time, rows []statline.PlayerDayRecord, deleteMissing bool) (statline.SyncResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return statline.SyncResult{}, fmt.Errorf("begin tx upsert player days: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var result statline.SyncResult
	keep := make([]any, 0, len(rows))
	for _, rec := range rows {
		keep = append(keep, rec.PlayerID)

		stats, err := encodeStats(rec.Stats)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert player day player=%s: %w", rec.PlayerID, err)
		}
		insertModel := playerDayInsertModel{
			PlayerID:    rec.PlayerID,
			PlayerName:  rec.PlayerName,
			TeamID:      teamID,
			SeasonID:    rec.SeasonID,
			WeekID:      rec.WeekID,
			Date:        date,
			Group:       string(rec.Group),
			BestPos:     rec.BestPos,
			FullPos:     rec.FullPos,
			Added:       rec.Added,
			MissedStart: rec.MissedStart,
			BenchStart:  rec.BenchStart,
			Stats:       stats,
			Rating:      rec.Rating,
		}
		query, args, err := qb.InsertModel("player_day_stats", insertModel, playerDayUpsertSuffix)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("build upsert player day query: %w", err)
		}

		var inserted bool
		if err := tx.GetContext(ctx, &inserted, query, args...); err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert player day player=%s: %w", rec.PlayerID, err)
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if deleteMissing {
		// Scope is exactly one (team, date). Rows for other dates or teams
		// are never touched, even with an empty batch.
		query, args, err := qb.DeleteFrom("player_day_stats").
			Where(
				qb.Eq("team_public_id", teamID),
				qb.Eq("stat_date", date),
				qb.NotIn("player_public_id", keep),
			).
			ToSQL()
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("build delete missing player days query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("delete missing player days: %w", err)
		}
		if deleted, err := res.RowsAffected(); err == nil {
			result.Deleted = int(deleted)
		}
	}

	if err := tx.Commit(); err != nil {
		return statline.SyncResult{}, fmt.Errorf("commit upsert player days tx: %w", err)
	}
	return result, nil
}

var teamDayColumns = []string{
	"id", "team_public_id", "season_id", "week_public_id", "stat_date",
	"skater_started", "goalie_started", "adds", "missed_starts",
	"bench_starts", "stats", "rating", "created_at", "updated_at",
}

const teamDayUpsertSuffix = `ON CONFLICT (team_public_id, stat_date)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    week_public_id = EXCLUDED.week_public_id,
    skater_started = EXCLUDED.skater_started,
    goalie_started = EXCLUDED.goalie_started,
    adds = EXCLUDED.adds,
    missed_starts = EXCLUDED.missed_starts,
    bench_starts = EXCLUDED.bench_starts,
    stats = EXCLUDED.stats,
    rating = EXCLUDED.rating,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

func (r *StatlineRepository) ListTeamDaysByWeek(ctx context.Context, weekID string) ([]statline.TeamDayRecord, error) {
	query, args, err := qb.Select(teamDayColumns...).
		From("team_day_stats").
		Where(qb.Eq("week_public_id", weekID)).
		OrderBy("team_public_id", "stat_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team days by week query: %w", err)
	}

	var rows []teamDayRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team days by week: %w", err)
	}

	out := make([]statline.TeamDayRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list team days by week: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *StatlineRepository) UpsertTeamDay(ctx context.Context, rec statline.TeamDayRecord) (statline.SyncResult, error) {
	stats, err := encodeStats(rec.Stats)
	if err != nil {
		return statline.SyncResult{}, fmt.Errorf("upsert team day team=%s: %w", rec.TeamID, err)
	}
	insertModel := teamDayInsertModel{
		TeamID:        rec.TeamID,
		SeasonID:      rec.SeasonID,
		WeekID:        rec.WeekID,
		Date:          rec.Date,
		SkaterStarted: rec.SkaterStarted,
		GoalieStarted: rec.GoalieStarted,
		Adds:          rec.Adds,
		MissedStarts:  rec.MissedStarts,
		BenchStarts:   rec.BenchStarts,
		Stats:         stats,
		Rating:        rec.Rating,
	}
	query, args, err := qb.InsertModel("team_day_stats", insertModel, teamDayUpsertSuffix)
	if err != nil {
		return statline.SyncResult{}, fmt.Errorf("build upsert team day query: %w", err)
	}

	var inserted bool
	if err := r.db.GetContext(ctx, &inserted, query, args...); err != nil {
		return statline.SyncResult{}, fmt.Errorf("upsert team day team=%s: %w", rec.TeamID, err)
	}
	if inserted {
		return statline.SyncResult{Created: 1}, nil
	}
	return statline.SyncResult{Updated: 1}, nil
}

var teamWeekColumns = []string{
	"id", "team_public_id", "season_id", "week_public_id", "days",
	"skater_started", "goalie_started", "adds", "missed_starts",
	"bench_starts", "stats", "rating", "created_at", "updated_at",
}

const teamWeekUpsertSuffix = `ON CONFLICT (team_public_id, week_public_id)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    days = EXCLUDED.days,
    skater_started = EXCLUDED.skater_started,
    goalie_started = EXCLUDED.goalie_started,
    adds = EXCLUDED.adds,
    missed_starts = EXCLUDED.missed_starts,
    bench_starts = EXCLUDED.bench_starts,
    stats = EXCLUDED.stats,
    rating = EXCLUDED.rating,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

func (r *StatlineRepository) ListTeamWeeksByWeek(ctx context.Context, weekID string) ([]statline.TeamWeekRecord, error) {
	query, args, err := qb.Select(teamWeekColumns...).
		From("team_week_stats").
		Where(qb.Eq("week_public_id", weekID)).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team weeks query: %w", err)
	}

	var rows []teamWeekRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team weeks: %w", err)
	}

	out := make([]statline.TeamWeekRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list team weeks: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *StatlineRepository) UpsertTeamWeeks(ctx context.Context, rows []statline.TeamWeekRecord) (statline.SyncResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return statline.SyncResult{}, fmt.Errorf("begin tx upsert team weeks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var result statline.SyncResult
	for _, rec := range rows {
		stats, err := encodeStats(rec.Stats)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert team week team=%s: %w", rec.TeamID, err)
		}
		insertModel := teamWeekInsertModel{
			TeamID:        rec.TeamID,
			SeasonID:      rec.SeasonID,
			WeekID:        rec.WeekID,
			Days:          rec.Days,
			SkaterStarted: rec.SkaterStarted,
			GoalieStarted: rec.GoalieStarted,
			Adds:          rec.Adds,
			MissedStarts:  rec.MissedStarts,
			BenchStarts:   rec.BenchStarts,
			Stats:         stats,
			Rating:        rec.Rating,
		}
		query, args, err := qb.InsertModel("team_week_stats", insertModel, teamWeekUpsertSuffix)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("build upsert team week query: %w", err)
		}

		var inserted bool
		if err := tx.GetContext(ctx, &inserted, query, args...); err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert team week team=%s: %w", rec.TeamID, err)
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return statline.SyncResult{}, fmt.Errorf("commit upsert team weeks tx: %w", err)
	}
	return result, nil
}

var playerWeekColumns = []string{
	"id", "player_public_id", "player_name", "team_public_id", "season_id",
	"week_public_id", "position_group", "days", "stats", "rating",
	"created_at", "updated_at",
}

const playerWeekUpsertSuffix = `ON CONFLICT (player_public_id, team_public_id, week_public_id)
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    season_id = EXCLUDED.season_id,
    position_group = EXCLUDED.position_group,
    days = EXCLUDED.days,
    stats = EXCLUDED.stats,
    rating = EXCLUDED.rating,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

func (r *StatlineRepository) ListPlayerWeeksByWeek(ctx context.Context, weekID string) ([]statline.PlayerWeekRecord, error) {
	query, args, err := qb.Select(playerWeekColumns...).
		From("player_week_stats").
		Where(qb.Eq("week_public_id", weekID)).
		OrderBy("team_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player weeks query: %w", err)
	}

	var rows []playerWeekRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player weeks: %w", err)
	}

	out := make([]statline.PlayerWeekRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list player weeks: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *StatlineRepository) UpsertPlayerWeeks(ctx context.Context, rows []statline.PlayerWeekRecord) (statline.SyncResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return statline.SyncResult{}, fmt.Errorf("begin tx upsert player weeks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var result statline.SyncResult
	for _, rec := range rows {
		stats, err := encodeStats(rec.Stats)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert player week player=%s: %w", rec.PlayerID, err)
		}
		insertModel := playerWeekInsertModel{
			PlayerID:   rec.PlayerID,
			PlayerName: rec.PlayerName,
			TeamID:     rec.TeamID,
			SeasonID:   rec.SeasonID,
			WeekID:     rec.WeekID,
			Group:      string(rec.Group),
			Days:       rec.Days,
			Stats:      stats,
			Rating:     rec.Rating,
		}
		query, args, err := qb.InsertModel("player_week_stats", insertModel, playerWeekUpsertSuffix)
		if err != nil {
			return statline.SyncResult{}, fmt.Errorf("build upsert player week query: %w", err)
		}

		var inserted bool
		if err := tx.GetContext(ctx, &inserted, query, args...); err != nil {
			return statline.SyncResult{}, fmt.Errorf("upsert player week player=%s: %w", rec.PlayerID, err)
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return statline.SyncResult{}, fmt.Errorf("commit upsert player weeks tx: %w", err)
	}
	return result, nil
}
