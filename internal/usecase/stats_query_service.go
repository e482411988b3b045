package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

// StatsQueryService serves the read side: week aggregates and matchup
// standings as the pipeline last wrote them.
type StatsQueryService struct {
	seasonRepo   season.Repository
	statlineRepo statline.Repository
	matchupRepo  matchup.Repository
}

func NewStatsQueryService(
	seasonRepo season.Repository,
	statlineRepo statline.Repository,
	matchupRepo matchup.Repository,
) *StatsQueryService {
	return &StatsQueryService{
		seasonRepo:   seasonRepo,
		statlineRepo: statlineRepo,
		matchupRepo:  matchupRepo,
	}
}

func (s *StatsQueryService) week(ctx context.Context, weekID string) (season.Week, error) {
	week, found, err := s.seasonRepo.GetWeekByID(ctx, weekID)
	if err != nil {
		return season.Week{}, fmt.Errorf("get week %s: %w", weekID, err)
	}
	if !found {
		return season.Week{}, fmt.Errorf("%w: unknown week %s", ErrNotFound, weekID)
	}
	return week, nil
}

func (s *StatsQueryService) TeamWeeks(ctx context.Context, weekID string) ([]statline.TeamWeekRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.TeamWeeks")
	defer span.End()

	if _, err := s.week(ctx, weekID); err != nil {
		return nil, err
	}
	rows, err := s.statlineRepo.ListTeamWeeksByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list team weeks for %s: %w", weekID, err)
	}
	return rows, nil
}

func (s *StatsQueryService) PlayerWeeks(ctx context.Context, weekID string) ([]statline.PlayerWeekRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.PlayerWeeks")
	defer span.End()

	if _, err := s.week(ctx, weekID); err != nil {
		return nil, err
	}
	rows, err := s.statlineRepo.ListPlayerWeeksByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list player weeks for %s: %w", weekID, err)
	}
	return rows, nil
}

func (s *StatsQueryService) TeamDays(ctx context.Context, weekID string) ([]statline.TeamDayRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.TeamDays")
	defer span.End()

	if _, err := s.week(ctx, weekID); err != nil {
		return nil, err
	}
	rows, err := s.statlineRepo.ListTeamDaysByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list team days for %s: %w", weekID, err)
	}
	return rows, nil
}

func (s *StatsQueryService) Matchups(ctx context.Context, weekID string) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueryService.Matchups")
	defer span.End()

	week, err := s.week(ctx, weekID)
	if err != nil {
		return nil, err
	}
	rows, err := s.matchupRepo.ListByWeek(ctx, week.SeasonID, weekID)
	if err != nil {
		return nil, fmt.Errorf("list matchups for %s: %w", weekID, err)
	}
	return rows, nil
}
