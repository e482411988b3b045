package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/platform/id"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

func NewMatchupRepository(db *sqlx.DB, idGen id.Generator) *MatchupRepository {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	return &MatchupRepository{db: db, idGen: idGen}
}

type matchupRow struct {
	PublicID   string       `db:"public_id"`
	SeasonID   int64        `db:"season_id"`
	WeekID     string       `db:"week_public_id"`
	HomeTeamID string       `db:"home_team_public_id"`
	AwayTeamID string       `db:"away_team_public_id"`
	HomeScore  int          `db:"home_score"`
	AwayScore  int          `db:"away_score"`
	HomeWin    sql.NullBool `db:"home_win"`
	AwayWin    sql.NullBool `db:"away_win"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func (r matchupRow) toDomain() matchup.Matchup {
	return matchup.Matchup{
		ID:         r.PublicID,
		SeasonID:   r.SeasonID,
		WeekID:     r.WeekID,
		HomeTeamID: r.HomeTeamID,
		AwayTeamID: r.AwayTeamID,
		HomeScore:  r.HomeScore,
		AwayScore:  r.AwayScore,
		HomeWin:    boolPtr(r.HomeWin),
		AwayWin:    boolPtr(r.AwayWin),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type matchupInsertModel struct {
	PublicID   string       `db:"public_id"`
	SeasonID   int64        `db:"season_id"`
	WeekID     string       `db:"week_public_id"`
	HomeTeamID string       `db:"home_team_public_id"`
	AwayTeamID string       `db:"away_team_public_id"`
	HomeScore  int          `db:"home_score"`
	AwayScore  int          `db:"away_score"`
	HomeWin    sql.NullBool `db:"home_win"`
	AwayWin    sql.NullBool `db:"away_win"`
}

var matchupColumns = []string{
	"public_id", "season_id", "week_public_id", "home_team_public_id",
	"away_team_public_id", "home_score", "away_score", "home_win", "away_win",
	"created_at", "updated_at",
}

// The stored public_id is preserved on conflict: EXCLUDED.public_id is
// deliberately absent from the update list.
const matchupUpsertSuffix = `ON CONFLICT (week_public_id, home_team_public_id, away_team_public_id)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    home_win = EXCLUDED.home_win,
    away_win = EXCLUDED.away_win,
    updated_at = NOW()`

func (r *MatchupRepository) ListByWeek(ctx context.Context, seasonID int64, weekID string) ([]matchup.Matchup, error) {
	query, args, err := qb.Select(matchupColumns...).
		From("matchups").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("week_public_id", weekID),
		).
		OrderBy("home_team_public_id", "away_team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups by week query: %w", err)
	}

	var rows []matchupRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups by week: %w", err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchupRepository) Upsert(ctx context.Context, m matchup.Matchup) error {
	publicID := m.ID
	if publicID == "" {
		generated, err := r.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate matchup id: %w", err)
		}
		publicID = generated
	}

	insertModel := matchupInsertModel{
		PublicID:   publicID,
		SeasonID:   m.SeasonID,
		WeekID:     m.WeekID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		HomeWin:    nullableBool(m.HomeWin),
		AwayWin:    nullableBool(m.AwayWin),
	}
	query, args, err := qb.InsertModel("matchups", insertModel, matchupUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert matchup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert matchup %s: %w", m.Key(), err)
	}
	return nil
}
