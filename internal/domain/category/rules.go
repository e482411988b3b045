package category

import "github.com/riskibarqy/hockey-league/internal/domain/statline"

type Kind string

const (
	// KindCount categories are summed across the lineup.
	KindCount Kind = "count"
	// KindRatio categories are computed from summed components, never summed
	// or averaged themselves.
	KindRatio Kind = "ratio"
)

// Rule describes one stat category: how it aggregates, who it is gated by,
// whether it is scored head-to-head, and which season era it applies to.
// Era applicability is data here, not conditionals at call sites.
type Rule struct {
	Key          string
	Name         string
	Kind         Kind
	GoalieOnly   bool
	Scored       bool
	HigherBetter bool

	// Ratio components. Scale multiplies the quotient (60 for per-sixty
	// rates), Precision is the rounding in decimal places.
	Numerator   string
	Denominator string
	Scale       float64
	Precision   int

	// Season era, inclusive on both ends. Zero means unbounded.
	FromSeason    int64
	ThroughSeason int64
}

// ActiveForSeason reports whether the rule is counted for the given season.
func (r Rule) ActiveForSeason(seasonID int64) bool {
	if r.FromSeason > 0 && seasonID < r.FromSeason {
		return false
	}
	if r.ThroughSeason > 0 && seasonID > r.ThroughSeason {
		return false
	}
	return true
}

// StartGate returns the team-day flag that gates this rule's emission.
func (r Rule) StartGate(skaterStarted, goalieStarted bool) bool {
	if r.GoalieOnly {
		return goalieStarted
	}
	return skaterStarted
}

// DefaultTable is the league's category table in scoring order. The order is
// fixed for reproducibility; it never changes the outcome of a matchup.
//
// Era rules carried from the league constitution: plus/minus was scored
// through season 6, shutouts and penalty minutes through season 4.
func DefaultTable() []Rule {
	return []Rule{
		{Key: "G", Name: "Goals", Kind: KindCount, Scored: true, HigherBetter: true},
		{Key: "A", Name: "Assists", Kind: KindCount, Scored: true, HigherBetter: true},
		{Key: "PLUSMINUS", Name: "Plus/Minus", Kind: KindCount, Scored: true, HigherBetter: true, ThroughSeason: 6},
		{Key: "PIM", Name: "Penalty Minutes", Kind: KindCount, Scored: true, HigherBetter: true, ThroughSeason: 4},
		{Key: "SOG", Name: "Shots on Goal", Kind: KindCount, Scored: true, HigherBetter: true},
		{Key: "HIT", Name: "Hits", Kind: KindCount, Scored: true, HigherBetter: true},
		{Key: "BLK", Name: "Blocked Shots", Kind: KindCount, Scored: true, HigherBetter: true},
		{Key: "GP", Name: "Games Played", Kind: KindCount},
		{Key: "W", Name: "Wins", Kind: KindCount, GoalieOnly: true, Scored: true, HigherBetter: true},
		{Key: "GA", Name: "Goals Against", Kind: KindCount, GoalieOnly: true, Scored: true},
		{Key: "SV", Name: "Saves", Kind: KindCount, GoalieOnly: true, Scored: true, HigherBetter: true},
		{Key: "SA", Name: "Shots Against", Kind: KindCount, GoalieOnly: true},
		{Key: "TOI", Name: "Time on Ice", Kind: KindCount, GoalieOnly: true},
		{Key: "GS", Name: "Goalie Starts", Kind: KindCount, GoalieOnly: true},
		{Key: "SO", Name: "Shutouts", Kind: KindCount, GoalieOnly: true, Scored: true, HigherBetter: true, ThroughSeason: 4},
		{Key: "GAA", Name: "Goals Against Average", Kind: KindRatio, GoalieOnly: true, Scored: true, Numerator: "GA", Denominator: "TOI", Scale: 60, Precision: 5},
		{Key: "SVP", Name: "Save Percentage", Kind: KindRatio, GoalieOnly: true, Scored: true, HigherBetter: true, Numerator: "SV", Denominator: "SA", Scale: 1, Precision: 6},
	}
}

// ActiveRules filters a table down to the rules counted for a season,
// preserving order.
func ActiveRules(table []Rule, seasonID int64) []Rule {
	out := make([]Rule, 0, len(table))
	for _, rule := range table {
		if rule.ActiveForSeason(seasonID) {
			out = append(out, rule)
		}
	}
	return out
}

// ScoredRules filters a table down to the head-to-head scored rules counted
// for a season, preserving order.
func ScoredRules(table []Rule, seasonID int64) []Rule {
	out := make([]Rule, 0, len(table))
	for _, rule := range table {
		if rule.Scored && rule.ActiveForSeason(seasonID) {
			out = append(out, rule)
		}
	}
	return out
}

// Ratio computes a ratio rule from already-aggregated components. It is
// blank when the gate is closed or the denominator is absent or zero.
func (r Rule) Ratio(stats statline.Stats) statline.Value {
	if r.Kind != KindRatio {
		return statline.Blank()
	}
	den := stats.Get(r.Denominator)
	if den.IsBlank() || den.Float64() == 0 {
		return statline.Blank()
	}
	num := stats.Get(r.Numerator)
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	return statline.Of(num.Float64() / den.Float64() * scale).Round(r.Precision)
}
