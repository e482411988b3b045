package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

const defaultBackfillWorkers = 4

// BackfillService replays the daily pipeline across a season's date range,
// then rolls up and resolves every week. Dates run in calendar order: add
// detection for a date reads the prior date's stored rows, so a date is not
// an independent scope. Weeks are; the rollup/resolve pass fans out over a
// bounded worker pool.
type BackfillService struct {
	seasonRepo  season.Repository
	dailySync   *DailySyncService
	rollup      *WeekRollupService
	matchups    *MatchupService
	workerCount int
	now         func() time.Time
	logger      *logging.Logger
}

func NewBackfillService(
	seasonRepo season.Repository,
	dailySync *DailySyncService,
	rollup *WeekRollupService,
	matchups *MatchupService,
	workerCount int,
	logger *logging.Logger,
) *BackfillService {
	if workerCount <= 0 {
		workerCount = defaultBackfillWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{
		seasonRepo:  seasonRepo,
		dailySync:   dailySync,
		rollup:      rollup,
		matchups:    matchups,
		workerCount: workerCount,
		now:         time.Now,
		logger:      logger,
	}
}

type BackfillResult struct {
	SeasonID    int64
	Dates       int
	DatesFailed int
	Weeks       int
	WeeksFailed int
}

func (s *BackfillService) RunSeason(ctx context.Context, seasonID int64) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.RunSeason")
	defer span.End()

	target, found, err := s.seasonRepo.GetSeasonByID(ctx, seasonID)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("get season %d: %w", seasonID, err)
	}
	if !found {
		return BackfillResult{}, fmt.Errorf("%w: unknown season %d", ErrConfiguration, seasonID)
	}

	today := season.Day(s.now().UTC())
	end := season.Day(target.EndDate)
	if end.After(today) {
		end = today
	}

	dates := make([]time.Time, 0, 200)
	for day := season.Day(target.StartDate); !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}

	result := BackfillResult{SeasonID: seasonID, Dates: len(dates)}
	if len(dates) == 0 {
		return result, nil
	}

	for _, date := range dates {
		if _, runErr := s.dailySync.Run(ctx, date); runErr != nil {
			result.DatesFailed++
			s.logger.WarnContext(ctx, "backfill date failed",
				"season_id", seasonID, "date", date.Format("2006-01-02"), "error", runErr)
		}
	}

	weeks, err := s.seasonRepo.ListWeeksBySeason(ctx, seasonID)
	if err != nil {
		return result, fmt.Errorf("list weeks for season %d: %w", seasonID, err)
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Number < weeks[j].Number
	})

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return result, fmt.Errorf("create backfill worker pool: %w", err)
	}
	defer pool.Release()

	var weeksFailed atomic.Int32
	var workers sync.WaitGroup
	for _, week := range weeks {
		if season.Day(week.StartDate).After(today) {
			continue
		}
		result.Weeks++

		week := week
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if _, err := s.rollup.Run(ctx, week.ID); err != nil {
				weeksFailed.Add(1)
				s.logger.WarnContext(ctx, "backfill week rollup failed", "week_id", week.ID, "error", err)
				return
			}
			if _, err := s.matchups.ResolveWeek(ctx, week.ID); err != nil {
				weeksFailed.Add(1)
				s.logger.WarnContext(ctx, "backfill matchup resolve failed", "week_id", week.ID, "error", err)
			}
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit backfill week to worker pool: %w", err)
		}
	}
	workers.Wait()
	result.WeeksFailed = int(weeksFailed.Load())

	return result, nil
}
