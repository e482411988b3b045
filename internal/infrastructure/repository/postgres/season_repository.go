package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

type seasonRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}

func (r seasonRow) toDomain() season.Season {
	return season.Season{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate.UTC(),
		EndDate:   r.EndDate.UTC(),
	}
}

type weekRow struct {
	PublicID  string    `db:"public_id"`
	SeasonID  int64     `db:"season_id"`
	Number    int       `db:"number"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Completed bool      `db:"completed"`
}

func (r weekRow) toDomain() season.Week {
	return season.Week{
		ID:        r.PublicID,
		SeasonID:  r.SeasonID,
		Number:    r.Number,
		StartDate: r.StartDate.UTC(),
		EndDate:   r.EndDate.UTC(),
		Completed: r.Completed,
	}
}

var seasonColumns = []string{"id", "name", "start_date", "end_date"}

var weekColumns = []string{"public_id", "season_id", "number", "start_date", "end_date", "completed"}

func (r *SeasonRepository) GetSeasonByDate(ctx context.Context, date time.Time) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).
		From("seasons").
		Where(
			qb.Expr("start_date <= ?", date),
			qb.Expr("end_date >= ?", date),
		).
		OrderBy("id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by date query: %w", err)
	}

	var row seasonRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by date: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetSeasonByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).
		From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetWeekByDate(ctx context.Context, seasonID int64, date time.Time) (season.Week, bool, error) {
	query, args, err := qb.Select(weekColumns...).
		From("weeks").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Expr("start_date <= ?", date),
			qb.Expr("end_date >= ?", date),
		).
		OrderBy("number").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Week{}, false, fmt.Errorf("build get week by date query: %w", err)
	}

	var row weekRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Week{}, false, nil
		}
		return season.Week{}, false, fmt.Errorf("get week by date: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetWeekByID(ctx context.Context, weekID string) (season.Week, bool, error) {
	query, args, err := qb.Select(weekColumns...).
		From("weeks").
		Where(qb.Eq("public_id", weekID)).
		ToSQL()
	if err != nil {
		return season.Week{}, false, fmt.Errorf("build get week by id query: %w", err)
	}

	var row weekRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Week{}, false, nil
		}
		return season.Week{}, false, fmt.Errorf("get week by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListWeeksBySeason(ctx context.Context, seasonID int64) ([]season.Week, error) {
	query, args, err := qb.Select(weekColumns...).
		From("weeks").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks by season query: %w", err)
	}

	var rows []weekRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weeks by season: %w", err)
	}

	out := make([]season.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
