package team

import "fmt"

// Team is one fantasy franchise inside a season.
type Team struct {
	ID       string
	SeasonID int64
	Name     string
	Owner    string
	Abbrev   string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID <= 0 {
		return fmt.Errorf("team season id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
