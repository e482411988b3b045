package rating

import (
	"context"
	"sort"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

// Slot limits for an active lineup. Everyone past a group's limit sits on
// the bench.
const (
	maxActiveForwards = 9
	maxActiveDefense  = 5
	maxActiveGoalies  = 2
)

// Optimizer is the default lineup assigner: within each position group the
// players who actually appeared come first, then higher producers, and the
// group's slot limit cuts the line between active and bench. BestPos always
// reflects the player's natural group; FullPos is where they ended up. An
// active goalie who appeared is credited with a start (GS) when the feed
// left it blank; a feed-provided GS is never overwritten.
type Optimizer struct {
	rater *Rater
}

func NewOptimizer() *Optimizer {
	return &Optimizer{rater: NewRater()}
}

func (o *Optimizer) Optimize(ctx context.Context, roster []statline.PlayerDayRecord) ([]statline.PlayerDayRecord, error) {
	byGroup := make(map[statline.PositionGroup][]int, 3)
	for i, rec := range roster {
		byGroup[rec.Group] = append(byGroup[rec.Group], i)
	}

	out := make([]statline.PlayerDayRecord, len(roster))
	copy(out, roster)

	for group, indexes := range byGroup {
		limit := activeLimit(group)

		sort.SliceStable(indexes, func(a, b int) bool {
			ra, rb := out[indexes[a]], out[indexes[b]]
			if ra.Played() != rb.Played() {
				return ra.Played()
			}
			sa, sb := o.producerScore(ctx, ra), o.producerScore(ctx, rb)
			if sa != sb {
				return sa > sb
			}
			return ra.PlayerID < rb.PlayerID
		})

		for rank, idx := range indexes {
			out[idx].BestPos = string(group)
			if rank < limit {
				out[idx].FullPos = string(group)
				if group == statline.GroupGoalie && out[idx].Played() && out[idx].Stats.Get("GS").IsBlank() {
					stats := out[idx].Stats.Clone()
					stats.Set("GS", statline.Of(1))
					out[idx].Stats = stats
				}
			} else {
				out[idx].FullPos = statline.SlotBench
			}
		}
	}

	return out, nil
}

func (o *Optimizer) producerScore(ctx context.Context, rec statline.PlayerDayRecord) float64 {
	result, err := o.rater.Rate(ctx, usecase.RatingInput{Group: rec.Group, Stats: rec.Stats})
	if err != nil {
		return 0
	}
	return result.Score
}

func activeLimit(group statline.PositionGroup) int {
	switch group {
	case statline.GroupDefense:
		return maxActiveDefense
	case statline.GroupGoalie:
		return maxActiveGoalies
	default:
		return maxActiveForwards
	}
}
