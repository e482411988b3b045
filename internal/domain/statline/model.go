package statline

import "time"

type PositionGroup string

const (
	GroupForward PositionGroup = "F"
	GroupDefense PositionGroup = "D"
	GroupGoalie  PositionGroup = "G"
)

const SlotBench = "BN"

// Stats holds per-category values keyed by category key ("G", "A", "SV", ...).
type Stats map[string]Value

func (s Stats) Get(key string) Value {
	if s == nil {
		return Blank()
	}
	value, ok := s[key]
	if !ok {
		return Blank()
	}
	return value
}

func (s Stats) Set(key string, value Value) {
	s[key] = value
}

func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// PlayerDayRecord is one player's stat line for one fantasy team on one date.
// Unique per (PlayerID, TeamID, Date).
type PlayerDayRecord struct {
	ID          string
	PlayerID    string
	PlayerName  string
	TeamID      string
	SeasonID    int64
	WeekID      string
	Date        time.Time
	Group       PositionGroup
	BestPos     string
	FullPos     string
	Added       bool
	MissedStart bool
	BenchStart  bool
	Stats       Stats
	Rating      Value
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active reports whether the player occupied a non-bench lineup slot.
func (r PlayerDayRecord) Active() bool {
	return r.FullPos != "" && r.FullPos != SlotBench
}

// Played reports whether the player actually appeared in a game that day.
func (r PlayerDayRecord) Played() bool {
	return r.Stats.Get("GP").Float64() >= 1
}

// TeamDayRecord aggregates a team's active lineup for one date. Derived,
// never hand-edited; recomputed from PlayerDayRecords each run.
// Unique per (TeamID, Date).
type TeamDayRecord struct {
	ID            string
	TeamID        string
	SeasonID      int64
	WeekID        string
	Date          time.Time
	SkaterStarted bool
	GoalieStarted bool
	Adds          int
	MissedStarts  int
	BenchStarts   int
	Stats         Stats
	Rating        Value
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TeamWeekRecord merges a team's day records across one week window.
// Unique per (TeamID, WeekID).
type TeamWeekRecord struct {
	ID            string
	TeamID        string
	SeasonID      int64
	WeekID        string
	Days          int
	SkaterStarted bool
	GoalieStarted bool
	Adds          int
	MissedStarts  int
	BenchStarts   int
	Stats         Stats
	Rating        Value
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PlayerWeekRecord merges one player's day records across one week window.
// Unique per (PlayerID, TeamID, WeekID).
type PlayerWeekRecord struct {
	ID         string
	PlayerID   string
	PlayerName string
	TeamID     string
	SeasonID   int64
	WeekID     string
	Group      PositionGroup
	Days       int
	Stats      Stats
	Rating     Value
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeriveLineupFlags sets the missed-start / bench-start flags from the
// record's slot assignment and appearance. Goalies never miss a start: an
// active goalie who did not play simply was not the starter that night.
func DeriveLineupFlags(rec *PlayerDayRecord) {
	rec.MissedStart = false
	rec.BenchStart = false
	if rec.Played() {
		rec.BenchStart = !rec.Active()
		return
	}
	if rec.Active() && rec.Group != GroupGoalie {
		rec.MissedStart = true
	}
}
