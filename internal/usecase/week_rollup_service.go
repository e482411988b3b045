package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/hockey-league/internal/domain/category"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// WeekRollupService merges day-level rows into team-week and player-week
// aggregates. Counting categories are summed blank-aware; ratio categories
// are recomputed from the week-level component sums, never averaged across
// days.
type WeekRollupService struct {
	contextSvc *SeasonContextService
	statsRepo  statline.Repository
	table      []category.Rule
	rater      Rater
	logger     *logging.Logger
}

func NewWeekRollupService(
	contextSvc *SeasonContextService,
	statsRepo statline.Repository,
	table []category.Rule,
	rater Rater,
	logger *logging.Logger,
) *WeekRollupService {
	if len(table) == 0 {
		table = category.DefaultTable()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WeekRollupService{
		contextSvc: contextSvc,
		statsRepo:  statsRepo,
		table:      table,
		rater:      rater,
		logger:     logger,
	}
}

type WeekRollupResult struct {
	WeekID      string
	TeamWeeks   statline.SyncResult
	PlayerWeeks statline.SyncResult
}

func (s *WeekRollupService) Run(ctx context.Context, weekID string) (WeekRollupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekRollupService.Run")
	defer span.End()

	sctx, err := s.contextSvc.ResolveWeek(ctx, weekID)
	if err != nil {
		return WeekRollupResult{}, err
	}

	result := WeekRollupResult{WeekID: weekID}
	var persistErrs []error

	teamWeeks, err := s.rollupTeamWeeks(ctx, sctx)
	if err != nil {
		return WeekRollupResult{}, err
	}
	if sync, err := s.statsRepo.UpsertTeamWeeks(ctx, teamWeeks); err != nil {
		persistErrs = append(persistErrs, fmt.Errorf("upsert team weeks week=%s: %w", weekID, err))
	} else {
		result.TeamWeeks = sync
	}

	playerWeeks, err := s.rollupPlayerWeeks(ctx, sctx)
	if err != nil {
		return WeekRollupResult{}, err
	}
	if sync, err := s.statsRepo.UpsertPlayerWeeks(ctx, playerWeeks); err != nil {
		persistErrs = append(persistErrs, fmt.Errorf("upsert player weeks week=%s: %w", weekID, err))
	} else {
		result.PlayerWeeks = sync
	}

	return result, errors.Join(persistErrs...)
}

func (s *WeekRollupService) rollupTeamWeeks(ctx context.Context, sctx SeasonContext) ([]statline.TeamWeekRecord, error) {
	days, err := s.statsRepo.ListTeamDaysByWeek(ctx, sctx.Week.ID)
	if err != nil {
		return nil, fmt.Errorf("list team days week=%s: %w", sctx.Week.ID, err)
	}

	byTeam := make(map[string][]statline.TeamDayRecord)
	teamIDs := make([]string, 0)
	for _, day := range days {
		if _, seen := byTeam[day.TeamID]; !seen {
			teamIDs = append(teamIDs, day.TeamID)
		}
		byTeam[day.TeamID] = append(byTeam[day.TeamID], day)
	}
	sort.Strings(teamIDs)

	out := make([]statline.TeamWeekRecord, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows := byTeam[teamID]
		week := statline.TeamWeekRecord{
			TeamID:   teamID,
			SeasonID: sctx.Season.ID,
			WeekID:   sctx.Week.ID,
			Days:     len(rows),
			Stats:    make(statline.Stats, len(s.table)),
		}
		for _, day := range rows {
			week.SkaterStarted = week.SkaterStarted || day.SkaterStarted
			week.GoalieStarted = week.GoalieStarted || day.GoalieStarted
			week.Adds += day.Adds
			week.MissedStarts += day.MissedStarts
			week.BenchStarts += day.BenchStarts
		}
		s.mergeStats(week.Stats, sctx.Season.ID, func(key string) []statline.Value {
			values := make([]statline.Value, 0, len(rows))
			for _, day := range rows {
				values = append(values, day.Stats.Get(key))
			}
			return values
		})

		rating, rerr := rate(ctx, s.rater, RatingInput{Stats: week.Stats})
		if rerr != nil {
			s.logger.WarnContext(ctx, "team-week rating unavailable", "team_id", teamID, "week_id", sctx.Week.ID, "error", rerr)
		}
		week.Rating = rating
		out = append(out, week)
	}
	return out, nil
}

func (s *WeekRollupService) rollupPlayerWeeks(ctx context.Context, sctx SeasonContext) ([]statline.PlayerWeekRecord, error) {
	days, err := s.statsRepo.ListPlayerDaysByWeek(ctx, sctx.Week.ID)
	if err != nil {
		return nil, fmt.Errorf("list player days week=%s: %w", sctx.Week.ID, err)
	}

	type playerKey struct {
		playerID string
		teamID   string
	}
	byPlayer := make(map[playerKey][]statline.PlayerDayRecord)
	keys := make([]playerKey, 0)
	for _, day := range days {
		key := playerKey{playerID: day.PlayerID, teamID: day.TeamID}
		if _, seen := byPlayer[key]; !seen {
			keys = append(keys, key)
		}
		byPlayer[key] = append(byPlayer[key], day)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].teamID != keys[j].teamID {
			return keys[i].teamID < keys[j].teamID
		}
		return keys[i].playerID < keys[j].playerID
	})

	out := make([]statline.PlayerWeekRecord, 0, len(keys))
	for _, key := range keys {
		rows := byPlayer[key]
		week := statline.PlayerWeekRecord{
			PlayerID:   key.playerID,
			PlayerName: rows[0].PlayerName,
			TeamID:     key.teamID,
			SeasonID:   sctx.Season.ID,
			WeekID:     sctx.Week.ID,
			Group:      rows[0].Group,
			Days:       len(rows),
			Stats:      make(statline.Stats, len(s.table)),
		}
		s.mergeStats(week.Stats, sctx.Season.ID, func(statKey string) []statline.Value {
			values := make([]statline.Value, 0, len(rows))
			for _, day := range rows {
				values = append(values, day.Stats.Get(statKey))
			}
			return values
		})

		rating, rerr := rate(ctx, s.rater, RatingInput{Group: week.Group, Stats: week.Stats})
		if rerr != nil {
			s.logger.WarnContext(ctx, "player-week rating unavailable", "player_id", key.playerID, "week_id", sctx.Week.ID, "error", rerr)
		}
		week.Rating = rating
		out = append(out, week)
	}
	return out, nil
}

// mergeStats folds per-day values into week stats: counts summed first,
// ratios recomputed from the summed components afterwards.
func (s *WeekRollupService) mergeStats(stats statline.Stats, seasonID int64, dayValues func(key string) []statline.Value) {
	for _, rule := range s.table {
		if rule.Kind != category.KindCount {
			continue
		}
		if !rule.ActiveForSeason(seasonID) {
			stats.Set(rule.Key, statline.Blank())
			continue
		}
		total := statline.Blank()
		for _, value := range dayValues(rule.Key) {
			total = total.Add(value)
		}
		stats.Set(rule.Key, total)
	}
	for _, rule := range s.table {
		if rule.Kind != category.KindRatio {
			continue
		}
		if !rule.ActiveForSeason(seasonID) {
			stats.Set(rule.Key, statline.Blank())
			continue
		}
		stats.Set(rule.Key, rule.Ratio(stats))
	}
}
