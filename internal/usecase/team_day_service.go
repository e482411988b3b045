package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/category"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// TeamDayService reduces a team's roster-for-the-day into one TeamDayRecord.
// All gating (start gates, season eras) comes from the category table; the
// aggregator itself has no per-category conditionals.
type TeamDayService struct {
	table  []category.Rule
	rater  Rater
	logger *logging.Logger
}

func NewTeamDayService(table []category.Rule, rater Rater, logger *logging.Logger) *TeamDayService {
	if len(table) == 0 {
		table = category.DefaultTable()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamDayService{
		table:  table,
		rater:  rater,
		logger: logger,
	}
}

// Aggregate builds the team-day record for one team and date from its
// post-optimization lineup. A roster with zero resolvable players still
// yields a record with every gated category blank; that is a team that did
// not play, not an error.
func (s *TeamDayService) Aggregate(
	ctx context.Context,
	seasonID int64,
	weekID string,
	teamID string,
	date time.Time,
	lineup []statline.PlayerDayRecord,
) statline.TeamDayRecord {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamDayService.Aggregate")
	defer span.End()

	record := statline.TeamDayRecord{
		TeamID:   teamID,
		SeasonID: seasonID,
		WeekID:   weekID,
		Date:     season.Day(date),
		Stats:    make(statline.Stats, len(s.table)),
	}

	skaterStarted, goalieStarted := startFlags(lineup)
	record.SkaterStarted = skaterStarted
	record.GoalieStarted = goalieStarted

	// Counts first; ratios read the summed components afterwards.
	for _, rule := range s.table {
		if rule.Kind != category.KindCount {
			continue
		}
		if !rule.ActiveForSeason(seasonID) || !rule.StartGate(skaterStarted, goalieStarted) {
			record.Stats.Set(rule.Key, statline.Blank())
			continue
		}
		record.Stats.Set(rule.Key, sumCategory(lineup, rule))
	}
	for _, rule := range s.table {
		if rule.Kind != category.KindRatio {
			continue
		}
		if !rule.ActiveForSeason(seasonID) || !rule.StartGate(skaterStarted, goalieStarted) {
			record.Stats.Set(rule.Key, statline.Blank())
			continue
		}
		record.Stats.Set(rule.Key, rule.Ratio(record.Stats))
	}

	// Roster-management counters run over the full roster, bench included.
	for _, player := range lineup {
		if player.Added {
			record.Adds++
		}
		if player.MissedStart {
			record.MissedStarts++
		}
		if player.BenchStart {
			record.BenchStarts++
		}
	}

	rating, err := rate(ctx, s.rater, RatingInput{Stats: record.Stats})
	if err != nil {
		s.logger.WarnContext(ctx, "team-day rating unavailable",
			"team_id", teamID,
			"date", record.Date.Format("2006-01-02"),
			"error", err,
		)
	}
	record.Rating = rating

	return record
}

// startFlags reports whether any active skater, and any active goalie,
// actually appeared that day. The flags gate every category emission.
func startFlags(lineup []statline.PlayerDayRecord) (skaterStarted, goalieStarted bool) {
	for _, player := range lineup {
		if !player.Active() || !player.Played() {
			continue
		}
		if player.Group == statline.GroupGoalie {
			goalieStarted = true
		} else {
			skaterStarted = true
		}
	}
	return skaterStarted, goalieStarted
}

// sumCategory adds one category across the active lineup, restricted to the
// position group the rule belongs to. The sum of all-blank lines is blank.
func sumCategory(lineup []statline.PlayerDayRecord, rule category.Rule) statline.Value {
	total := statline.Blank()
	for _, player := range lineup {
		if !player.Active() {
			continue
		}
		isGoalie := player.Group == statline.GroupGoalie
		if rule.GoalieOnly != isGoalie {
			continue
		}
		total = total.Add(player.Stats.Get(rule.Key))
	}
	return total
}
