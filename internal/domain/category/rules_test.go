package category

import (
	"testing"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

func TestRuleActiveForSeason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rule     Rule
		seasonID int64
		want     bool
	}{
		{name: "unbounded", rule: Rule{Key: "G"}, seasonID: 99, want: true},
		{name: "through boundary inclusive", rule: Rule{Key: "PIM", ThroughSeason: 4}, seasonID: 4, want: true},
		{name: "past through boundary", rule: Rule{Key: "PIM", ThroughSeason: 4}, seasonID: 5, want: false},
		{name: "from boundary inclusive", rule: Rule{Key: "X", FromSeason: 3}, seasonID: 3, want: true},
		{name: "before from boundary", rule: Rule{Key: "X", FromSeason: 3}, seasonID: 2, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rule.ActiveForSeason(tc.seasonID); got != tc.want {
				t.Fatalf("ActiveForSeason(%d) = %v, want %v", tc.seasonID, got, tc.want)
			}
		})
	}
}

func TestDefaultTableEras(t *testing.T) {
	t.Parallel()

	scoredKeys := func(seasonID int64) map[string]bool {
		out := make(map[string]bool)
		for _, rule := range ScoredRules(DefaultTable(), seasonID) {
			out[rule.Key] = true
		}
		return out
	}

	season4 := scoredKeys(4)
	for _, key := range []string{"PLUSMINUS", "PIM", "SO"} {
		if !season4[key] {
			t.Fatalf("season 4 should still score %s", key)
		}
	}

	season5 := scoredKeys(5)
	if season5["PIM"] || season5["SO"] {
		t.Fatalf("season 5 must not score PIM or SO, got %v", season5)
	}
	if !season5["PLUSMINUS"] {
		t.Fatal("season 5 should still score PLUSMINUS")
	}

	season7 := scoredKeys(7)
	if season7["PLUSMINUS"] {
		t.Fatal("season 7 must not score PLUSMINUS")
	}
	for _, key := range []string{"G", "A", "SOG", "HIT", "BLK", "W", "GA", "SV", "GAA", "SVP"} {
		if !season7[key] {
			t.Fatalf("season 7 should score %s", key)
		}
	}
}

func TestDefaultTableUnscoredComponents(t *testing.T) {
	t.Parallel()

	scored := map[string]bool{}
	for _, rule := range ScoredRules(DefaultTable(), 7) {
		scored[rule.Key] = true
	}
	for _, key := range []string{"GP", "SA", "TOI", "GS"} {
		if scored[key] {
			t.Fatalf("%s is a component category and must never award a point", key)
		}
	}
}

func TestStartGate(t *testing.T) {
	t.Parallel()

	skaterRule := Rule{Key: "G"}
	goalieRule := Rule{Key: "SV", GoalieOnly: true}

	if skaterRule.StartGate(false, true) {
		t.Fatal("skater category must stay gated when only a goalie started")
	}
	if !skaterRule.StartGate(true, false) {
		t.Fatal("skater category opens on a skater start")
	}
	if goalieRule.StartGate(true, false) {
		t.Fatal("goalie category must stay gated when only skaters started")
	}
	if !goalieRule.StartGate(false, true) {
		t.Fatal("goalie category opens on a goalie start")
	}
}

func TestRatioGAA(t *testing.T) {
	t.Parallel()

	var gaa Rule
	for _, rule := range DefaultTable() {
		if rule.Key == "GAA" {
			gaa = rule
		}
	}

	stats := statline.Stats{
		"GA":  statline.Of(12),
		"TOI": statline.Of(180),
	}
	got := gaa.Ratio(stats)
	if got.IsBlank() || got.Float64() != 4 {
		t.Fatalf("GAA = %v, want 4", got)
	}
}

func TestRatioSVP(t *testing.T) {
	t.Parallel()

	var svp Rule
	for _, rule := range DefaultTable() {
		if rule.Key == "SVP" {
			svp = rule
		}
	}

	stats := statline.Stats{
		"SV": statline.Of(55),
		"SA": statline.Of(60),
	}
	got := svp.Ratio(stats)
	if got.IsBlank() || got.Float64() != 0.916667 {
		t.Fatalf("SVP = %v, want 0.916667", got)
	}
}

func TestRatioBlankDenominator(t *testing.T) {
	t.Parallel()

	rule := Rule{Key: "SVP", Kind: KindRatio, Numerator: "SV", Denominator: "SA", Precision: 6}

	if got := rule.Ratio(statline.Stats{"SV": statline.Of(10)}); !got.IsBlank() {
		t.Fatalf("ratio with absent denominator = %v, want blank", got)
	}
	zeroDen := statline.Stats{"SV": statline.Of(0), "SA": statline.Of(0)}
	if got := rule.Ratio(zeroDen); !got.IsBlank() {
		t.Fatalf("ratio with zero denominator = %v, want blank", got)
	}
}

func TestRatioDefaultScale(t *testing.T) {
	t.Parallel()

	rule := Rule{Key: "R", Kind: KindRatio, Numerator: "N", Denominator: "D", Precision: 2}
	got := rule.Ratio(statline.Stats{"N": statline.Of(1), "D": statline.Of(4)})
	if got.Float64() != 0.25 {
		t.Fatalf("ratio with zero scale = %v, want 0.25", got)
	}
}

func TestRatioOnCountRule(t *testing.T) {
	t.Parallel()

	rule := Rule{Key: "G", Kind: KindCount}
	if got := rule.Ratio(statline.Stats{"G": statline.Of(3)}); !got.IsBlank() {
		t.Fatalf("Ratio on a count rule = %v, want blank", got)
	}
}
