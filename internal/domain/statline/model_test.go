package statline

import "testing"

func TestStatsGetMissing(t *testing.T) {
	t.Parallel()

	var nilStats Stats
	if got := nilStats.Get("G"); !got.IsBlank() {
		t.Fatalf("nil stats Get = %v, want blank", got)
	}
	stats := Stats{"G": Of(2)}
	if got := stats.Get("A"); !got.IsBlank() {
		t.Fatalf("missing key Get = %v, want blank", got)
	}
	if got := stats.Get("G"); got.Float64() != 2 {
		t.Fatalf("Get(G) = %v, want 2", got)
	}
}

func TestStatsClone(t *testing.T) {
	t.Parallel()

	original := Stats{"G": Of(1)}
	clone := original.Clone()
	clone.Set("G", Of(9))
	if original.Get("G").Float64() != 1 {
		t.Fatal("mutating a clone must not touch the original")
	}
}

func TestPlayerDayRecordActive(t *testing.T) {
	t.Parallel()

	if (PlayerDayRecord{FullPos: ""}).Active() {
		t.Fatal("unslotted player must not be active")
	}
	if (PlayerDayRecord{FullPos: SlotBench}).Active() {
		t.Fatal("benched player must not be active")
	}
	if !(PlayerDayRecord{FullPos: "F"}).Active() {
		t.Fatal("slotted player must be active")
	}
}

func TestPlayerDayRecordPlayed(t *testing.T) {
	t.Parallel()

	if (PlayerDayRecord{Stats: Stats{"GP": Blank()}}).Played() {
		t.Fatal("blank GP must read as did-not-play")
	}
	if (PlayerDayRecord{Stats: Stats{"GP": Of(0)}}).Played() {
		t.Fatal("GP=0 must read as did-not-play")
	}
	if !(PlayerDayRecord{Stats: Stats{"GP": Of(1)}}).Played() {
		t.Fatal("GP=1 must read as played")
	}
}

func TestDeriveLineupFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		rec             PlayerDayRecord
		wantMissedStart bool
		wantBenchStart  bool
	}{
		{
			name:            "active skater who played",
			rec:             PlayerDayRecord{Group: GroupForward, FullPos: "F", Stats: Stats{"GP": Of(1)}},
			wantMissedStart: false,
			wantBenchStart:  false,
		},
		{
			name:            "benched skater who played",
			rec:             PlayerDayRecord{Group: GroupForward, FullPos: SlotBench, Stats: Stats{"GP": Of(1)}},
			wantMissedStart: false,
			wantBenchStart:  true,
		},
		{
			name:            "active skater who sat out",
			rec:             PlayerDayRecord{Group: GroupDefense, FullPos: "D", Stats: Stats{}},
			wantMissedStart: true,
			wantBenchStart:  false,
		},
		{
			name:            "active goalie who sat out",
			rec:             PlayerDayRecord{Group: GroupGoalie, FullPos: "G", Stats: Stats{}},
			wantMissedStart: false,
			wantBenchStart:  false,
		},
		{
			name:            "benched skater who sat out",
			rec:             PlayerDayRecord{Group: GroupForward, FullPos: SlotBench, Stats: Stats{}},
			wantMissedStart: false,
			wantBenchStart:  false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := tc.rec
			// Stale flags must be recomputed, never accumulated.
			rec.MissedStart = true
			rec.BenchStart = true
			DeriveLineupFlags(&rec)
			if rec.MissedStart != tc.wantMissedStart {
				t.Fatalf("MissedStart = %v, want %v", rec.MissedStart, tc.wantMissedStart)
			}
			if rec.BenchStart != tc.wantBenchStart {
				t.Fatalf("BenchStart = %v, want %v", rec.BenchStart, tc.wantBenchStart)
			}
		})
	}
}
