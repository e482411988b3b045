package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/category"
	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

const DefaultGoalieStartMinimum = 3

// MatchupService scores the week's head-to-head pairings category by
// category. Scores are running tallies persisted on every run; the win/loss
// flags are only ever set once the week is complete.
type MatchupService struct {
	contextSvc         *SeasonContextService
	matchupRepo        matchup.Repository
	statsRepo          statline.Repository
	table              []category.Rule
	goalieStartMinimum int
	now                func() time.Time
	logger             *logging.Logger
}

func NewMatchupService(
	contextSvc *SeasonContextService,
	matchupRepo matchup.Repository,
	statsRepo statline.Repository,
	table []category.Rule,
	goalieStartMinimum int,
	logger *logging.Logger,
) *MatchupService {
	if len(table) == 0 {
		table = category.DefaultTable()
	}
	if goalieStartMinimum <= 0 {
		goalieStartMinimum = DefaultGoalieStartMinimum
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchupService{
		contextSvc:         contextSvc,
		matchupRepo:        matchupRepo,
		statsRepo:          statsRepo,
		table:              table,
		goalieStartMinimum: goalieStartMinimum,
		now:                time.Now,
		logger:             logger,
	}
}

type ResolveResult struct {
	WeekID       string
	WeekComplete bool
	Resolved     int
	Skipped      int
}

// ResolveWeek scores every matchup of the week from the stored team-week
// aggregates. A matchup missing stats for either side is skipped with a log
// and left for a later run; persistence errors are collected and surfaced
// after the whole batch has been attempted.
func (s *MatchupService) ResolveWeek(ctx context.Context, weekID string) (ResolveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ResolveWeek")
	defer span.End()

	sctx, err := s.contextSvc.ResolveWeek(ctx, weekID)
	if err != nil {
		return ResolveResult{}, err
	}

	weekComplete := sctx.Week.CompleteAsOf(season.Day(s.now().UTC()))

	teamWeeks, err := s.statsRepo.ListTeamWeeksByWeek(ctx, weekID)
	if err != nil {
		return ResolveResult{}, fmt.Errorf("list team weeks week=%s: %w", weekID, err)
	}
	statsByTeam := make(map[string]statline.TeamWeekRecord, len(teamWeeks))
	for _, row := range teamWeeks {
		statsByTeam[row.TeamID] = row
	}

	goalieStarts, err := s.goalieStartsByTeam(ctx, weekID)
	if err != nil {
		return ResolveResult{}, err
	}

	matchups, err := s.matchupRepo.ListByWeek(ctx, sctx.Season.ID, weekID)
	if err != nil {
		return ResolveResult{}, fmt.Errorf("list matchups week=%s: %w", weekID, err)
	}

	result := ResolveResult{WeekID: weekID, WeekComplete: weekComplete}
	var persistErrs []error
	for _, m := range matchups {
		home, homeOK := statsByTeam[m.HomeTeamID]
		away, awayOK := statsByTeam[m.AwayTeamID]
		if !homeOK || !awayOK {
			s.logger.WarnContext(ctx, "skip matchup: missing team-week stats",
				"week_id", weekID,
				"home_team_id", m.HomeTeamID, "home_stats", homeOK,
				"away_team_id", m.AwayTeamID, "away_stats", awayOK,
			)
			result.Skipped++
			continue
		}

		homeScore, awayScore := s.score(
			sctx.Season.ID,
			home, away,
			goalieStarts[m.HomeTeamID] >= s.goalieStartMinimum,
			goalieStarts[m.AwayTeamID] >= s.goalieStartMinimum,
		)

		m.HomeScore = homeScore
		m.AwayScore = awayScore
		m.HomeWin = nil
		m.AwayWin = nil
		if weekComplete {
			homeWin := homeScore >= awayScore
			awayWin := awayScore > homeScore
			m.HomeWin = &homeWin
			m.AwayWin = &awayWin
		}

		if err := s.matchupRepo.Upsert(ctx, m); err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("upsert matchup %s: %w", m.Key(), err))
			continue
		}
		result.Resolved++
	}

	return result, errors.Join(persistErrs...)
}

// score walks the season's scored categories in table order and counts
// category wins per side. Blank values compare as 0; exact ties award no
// point; goalie-only categories respect the start-eligibility gate.
func (s *MatchupService) score(seasonID int64, home, away statline.TeamWeekRecord, homeEligible, awayEligible bool) (int, int) {
	homeScore, awayScore := 0, 0
	for _, rule := range category.ScoredRules(s.table, seasonID) {
		if rule.GoalieOnly {
			switch {
			case !homeEligible && !awayEligible:
				continue
			case homeEligible && !awayEligible:
				homeScore++
				continue
			case awayEligible && !homeEligible:
				awayScore++
				continue
			}
		}

		homeValue := home.Stats.Get(rule.Key).Float64()
		awayValue := away.Stats.Get(rule.Key).Float64()
		switch {
		case homeValue == awayValue:
			// tie, no point either way
		case (homeValue > awayValue) == rule.HigherBetter:
			homeScore++
		default:
			awayScore++
		}
	}
	return homeScore, awayScore
}

// goalieStartsByTeam sums goalie starts across each team's goalie
// player-week rows; the sum decides goalie-category eligibility.
func (s *MatchupService) goalieStartsByTeam(ctx context.Context, weekID string) (map[string]int, error) {
	rows, err := s.statsRepo.ListPlayerWeeksByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list player weeks week=%s: %w", weekID, err)
	}
	out := make(map[string]int)
	for _, row := range rows {
		if row.Group != statline.GroupGoalie {
			continue
		}
		out[row.TeamID] += int(row.Stats.Get("GS").Float64())
	}
	return out, nil
}
