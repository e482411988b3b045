package matchup

import "time"

// Matchup is one head-to-head pairing for a week. Scores are running
// category-win tallies and are visible before the week ends; the win flags
// stay nil until the week is complete.
type Matchup struct {
	ID         string
	SeasonID   int64
	WeekID     string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	HomeWin    *bool
	AwayWin    *bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key is the natural identity of a matchup inside its season.
func (m Matchup) Key() string {
	return m.WeekID + "/" + m.HomeTeamID + "/" + m.AwayTeamID
}
