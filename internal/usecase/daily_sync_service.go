package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// DailySyncService runs the scrape-to-store pipeline for one date: resolve
// the season context, fetch each team's roster, assign lineups, aggregate
// team days, and upsert everything by natural key. A team that fails is
// skipped and the run continues; two runs over the same date converge to the
// same rows because every write is an idempotent upsert.
type DailySyncService struct {
	contextSvc *SeasonContextService
	teamDaySvc *TeamDayService
	provider   RosterProvider
	optimizer  LineupOptimizer
	rater      Rater
	statsRepo  statline.Repository
	logger     *logging.Logger
}

func NewDailySyncService(
	contextSvc *SeasonContextService,
	teamDaySvc *TeamDayService,
	provider RosterProvider,
	optimizer LineupOptimizer,
	rater Rater,
	statsRepo statline.Repository,
	logger *logging.Logger,
) *DailySyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DailySyncService{
		contextSvc: contextSvc,
		teamDaySvc: teamDaySvc,
		provider:   provider,
		optimizer:  optimizer,
		rater:      rater,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

type DailySyncResult struct {
	Date           time.Time
	SeasonID       int64
	WeekID         string
	TeamsProcessed int
	TeamsSkipped   int
	TeamsFailed    int
	PlayerDays     statline.SyncResult
	TeamDays       statline.SyncResult
}

// Run executes the daily pipeline for one date. Persistence errors are
// collected and returned after the whole batch has been attempted; only a
// missing season/week context aborts up front.
func (s *DailySyncService) Run(ctx context.Context, date time.Time) (DailySyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DailySyncService.Run")
	defer span.End()

	if s.provider == nil || s.optimizer == nil {
		return DailySyncResult{}, fmt.Errorf("%w: roster provider or lineup optimizer is not configured", ErrDependencyUnavailable)
	}

	sctx, err := s.contextSvc.Resolve(ctx, date)
	if err != nil {
		return DailySyncResult{}, err
	}

	day := season.Day(date)
	result := DailySyncResult{
		Date:     day,
		SeasonID: sctx.Season.ID,
		WeekID:   sctx.Week.ID,
	}

	var persistErrs []error
	for _, tm := range sctx.Teams {
		priorRoster, err := s.priorRoster(ctx, tm.ID, day)
		if err != nil {
			s.logger.WarnContext(ctx, "prior-day roster unavailable, add-counts will start from zero",
				"team_id", tm.ID, "date", day.Format("2006-01-02"), "error", err)
			priorRoster = nil
		}

		entries, err := s.provider.FetchTeamRoster(ctx, tm.ID, day)
		if err != nil {
			s.logger.WarnContext(ctx, "skip team: roster fetch failed",
				"team_id", tm.ID, "date", day.Format("2006-01-02"), "error", err)
			result.TeamsSkipped++
			continue
		}

		roster := s.buildPlayerDays(sctx, tm.ID, day, entries)
		lineup, err := s.optimizer.Optimize(ctx, roster)
		if err != nil {
			// Neutral fallback: keep the scraped order with everyone in
			// their position-group slot so the day still aggregates.
			s.logger.WarnContext(ctx, "lineup optimizer failed, using unoptimized roster",
				"team_id", tm.ID, "date", day.Format("2006-01-02"), "error", err)
			lineup = roster
			for idx := range lineup {
				lineup[idx].BestPos = string(lineup[idx].Group)
				lineup[idx].FullPos = string(lineup[idx].Group)
			}
		}

		for idx := range lineup {
			lineup[idx].Added = priorRoster != nil && !priorRoster[lineup[idx].PlayerID]
			statline.DeriveLineupFlags(&lineup[idx])

			rating, rerr := rate(ctx, s.rater, RatingInput{Group: lineup[idx].Group, Stats: lineup[idx].Stats})
			if rerr != nil {
				s.logger.WarnContext(ctx, "player rating unavailable",
					"player_id", lineup[idx].PlayerID,
					"team_id", tm.ID,
					"date", day.Format("2006-01-02"),
					"error", rerr,
				)
			}
			lineup[idx].Rating = rating
		}

		teamDay := s.teamDaySvc.Aggregate(ctx, sctx.Season.ID, sctx.Week.ID, tm.ID, day, lineup)

		persisted := true
		playerSync, err := s.statsRepo.UpsertPlayerDays(ctx, tm.ID, day, lineup, true)
		if err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("upsert player days team=%s date=%s: %w", tm.ID, day.Format("2006-01-02"), err))
			persisted = false
		} else {
			result.PlayerDays = result.PlayerDays.Merge(playerSync)
		}

		teamSync, err := s.statsRepo.UpsertTeamDay(ctx, teamDay)
		if err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("upsert team day team=%s date=%s: %w", tm.ID, day.Format("2006-01-02"), err))
			persisted = false
		} else {
			result.TeamDays = result.TeamDays.Merge(teamSync)
		}

		// A team only counts as processed when both of its writes landed.
		if persisted {
			result.TeamsProcessed++
		} else {
			result.TeamsFailed++
		}
	}

	return result, errors.Join(persistErrs...)
}

// priorRoster returns the set of player ids on the team's roster the
// previous calendar day, for ADD detection.
func (s *DailySyncService) priorRoster(ctx context.Context, teamID string, day time.Time) (map[string]bool, error) {
	rows, err := s.statsRepo.ListPlayerDaysByTeamAndDate(ctx, teamID, day.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = true
	}
	return out, nil
}

func (s *DailySyncService) buildPlayerDays(sctx SeasonContext, teamID string, day time.Time, entries []RosterEntry) []statline.PlayerDayRecord {
	out := make([]statline.PlayerDayRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.PlayerID == "" {
			continue
		}
		stats := make(statline.Stats, len(entry.Stats))
		for key, value := range entry.Stats {
			stats.Set(key, statline.Of(value))
		}
		out = append(out, statline.PlayerDayRecord{
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			TeamID:     teamID,
			SeasonID:   sctx.Season.ID,
			WeekID:     sctx.Week.ID,
			Date:       day,
			Group:      entry.Group,
			Stats:      stats,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
