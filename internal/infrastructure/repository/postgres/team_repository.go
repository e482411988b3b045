package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamRow struct {
	PublicID string `db:"public_id"`
	SeasonID int64  `db:"season_id"`
	Name     string `db:"name"`
	Owner    string `db:"owner"`
	Abbrev   string `db:"abbrev"`
}

func (r teamRow) toDomain() team.Team {
	return team.Team{
		ID:       r.PublicID,
		SeasonID: r.SeasonID,
		Name:     r.Name,
		Owner:    r.Owner,
		Abbrev:   r.Abbrev,
	}
}

var teamColumns = []string{"public_id", "season_id", "name", "owner", "abbrev"}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID int64) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by season query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by season: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, seasonID int64, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("public_id", teamID),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return row.toDomain(), true, nil
}
