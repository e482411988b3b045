package season

import "time"

// Season is one league year. IDs are small ordinals assigned by the league
// and the category era rules key off them.
type Season struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (s Season) Covers(date time.Time) bool {
	day := Day(date)
	return !day.Before(Day(s.StartDate)) && !day.After(Day(s.EndDate))
}

// Week is one head-to-head scoring window inside a season.
type Week struct {
	ID        string
	SeasonID  int64
	Number    int
	StartDate time.Time
	EndDate   time.Time
	// Completed is an explicit completion marker for weeks closed out by
	// hand (shortened weeks, season-end adjustments).
	Completed bool
}

func (w Week) Covers(date time.Time) bool {
	day := Day(date)
	return !day.Before(Day(w.StartDate)) && !day.After(Day(w.EndDate))
}

// CompleteAsOf reports whether results may be finalized: the week carries an
// explicit completion marker or today has reached its end date.
func (w Week) CompleteAsOf(today time.Time) bool {
	if w.Completed {
		return true
	}
	return !Day(today).Before(Day(w.EndDate))
}

// Day truncates a timestamp to its UTC calendar date. All pipeline keys are
// date-grained.
func Day(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
