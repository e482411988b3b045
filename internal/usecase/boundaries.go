package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

// RosterProvider returns, for a team and a date, the raw per-player stat
// lines scraped from the league host. Stat dicts are keyed by category name
// and may be missing fields for categories the player has no line for.
type RosterProvider interface {
	FetchTeamRoster(ctx context.Context, teamID string, date time.Time) ([]RosterEntry, error)
}

type RosterEntry struct {
	PlayerID   string
	PlayerName string
	Group      statline.PositionGroup
	Stats      map[string]float64
}

// Rater scores an aggregated stat line. It is pure and deterministic given
// the input; the pipeline treats a failure as "rating unavailable" and keeps
// going with a blank score.
type Rater interface {
	Rate(ctx context.Context, input RatingInput) (RatingResult, error)
}

type RatingInput struct {
	Group statline.PositionGroup
	Stats statline.Stats
}

type RatingResult struct {
	Score float64
}

// LineupOptimizer assigns bestPos/fullPos slots (bench included) and goalie
// start credit across a roster-for-the-day. The aggregator trusts its
// assignments without second-guessing them.
type LineupOptimizer interface {
	Optimize(ctx context.Context, roster []statline.PlayerDayRecord) ([]statline.PlayerDayRecord, error)
}

// rate invokes the external rating function for one record, normalizing
// failure into a blank score so a bad record never aborts the batch.
func rate(ctx context.Context, rater Rater, input RatingInput) (statline.Value, error) {
	if rater == nil {
		return statline.Blank(), nil
	}
	result, err := rater.Rate(ctx, input)
	if err != nil {
		return statline.Blank(), err
	}
	return statline.Of(result.Score), nil
}
