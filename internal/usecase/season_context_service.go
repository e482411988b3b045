package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// SeasonContext is everything a pipeline run needs to know about a date:
// which season and week cover it and which teams are active.
type SeasonContext struct {
	Season season.Season
	Week   season.Week
	Teams  []team.Team
}

type SeasonContextService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewSeasonContextService(seasonRepo season.Repository, teamRepo team.Repository, logger *logging.Logger) *SeasonContextService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonContextService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// Resolve maps a target date onto its season, week and active teams. A date
// no season or week covers is a configuration failure and aborts the run;
// there is nothing sensible to aggregate against.
func (s *SeasonContextService) Resolve(ctx context.Context, date time.Time) (SeasonContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonContextService.Resolve")
	defer span.End()

	day := season.Day(date)

	activeSeason, found, err := s.seasonRepo.GetSeasonByDate(ctx, day)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("get season by date %s: %w", day.Format("2006-01-02"), err)
	}
	if !found {
		return SeasonContext{}, fmt.Errorf("%w: no season covers %s", ErrConfiguration, day.Format("2006-01-02"))
	}

	week, found, err := s.seasonRepo.GetWeekByDate(ctx, activeSeason.ID, day)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("get week by date %s: %w", day.Format("2006-01-02"), err)
	}
	if !found {
		return SeasonContext{}, fmt.Errorf("%w: season %d has no week covering %s", ErrConfiguration, activeSeason.ID, day.Format("2006-01-02"))
	}

	teams, err := s.teamRepo.ListBySeason(ctx, activeSeason.ID)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("list teams for season %d: %w", activeSeason.ID, err)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].ID < teams[j].ID
	})

	return SeasonContext{
		Season: activeSeason,
		Week:   week,
		Teams:  teams,
	}, nil
}

// ResolveWeek loads a week and its season by week id, for week-grained jobs.
func (s *SeasonContextService) ResolveWeek(ctx context.Context, weekID string) (SeasonContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonContextService.ResolveWeek")
	defer span.End()

	week, found, err := s.seasonRepo.GetWeekByID(ctx, weekID)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("get week %s: %w", weekID, err)
	}
	if !found {
		return SeasonContext{}, fmt.Errorf("%w: unknown week %s", ErrConfiguration, weekID)
	}

	activeSeason, found, err := s.seasonRepo.GetSeasonByID(ctx, week.SeasonID)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("get season %d: %w", week.SeasonID, err)
	}
	if !found {
		return SeasonContext{}, fmt.Errorf("%w: week %s references unknown season %d", ErrConfiguration, weekID, week.SeasonID)
	}

	teams, err := s.teamRepo.ListBySeason(ctx, activeSeason.ID)
	if err != nil {
		return SeasonContext{}, fmt.Errorf("list teams for season %d: %w", activeSeason.ID, err)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].ID < teams[j].ID
	})

	return SeasonContext{
		Season: activeSeason,
		Week:   week,
		Teams:  teams,
	}, nil
}
