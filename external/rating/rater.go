package rating

import (
	"context"
	"math"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

// Weights per category, by position group. Skaters are scored on offensive
// and defensive counting stats; goalies on the save line. Blank values read
// as zero, so a player with no line scores zero rather than erroring.
var skaterWeights = map[string]float64{
	"G":         3.0,
	"A":         2.0,
	"PLUSMINUS": 0.5,
	"PIM":       -0.2,
	"SOG":       0.3,
	"HIT":       0.25,
	"BLK":       0.25,
}

var goalieWeights = map[string]float64{
	"W":  4.0,
	"SV": 0.1,
	"GA": -1.0,
	"SO": 3.0,
	"GS": 1.0,
}

// Rater is the default rating function. It is pure: same stats, same score.
type Rater struct{}

func NewRater() *Rater {
	return &Rater{}
}

func (r *Rater) Rate(_ context.Context, input usecase.RatingInput) (usecase.RatingResult, error) {
	weights := skaterWeights
	if input.Group == statline.GroupGoalie {
		weights = goalieWeights
	}

	score := 0.0
	for key, weight := range weights {
		score += input.Stats.Get(key).Float64() * weight
	}
	// Two decimals is plenty for a lineup-screen rating.
	score = math.Round(score*100) / 100
	return usecase.RatingResult{Score: score}, nil
}
