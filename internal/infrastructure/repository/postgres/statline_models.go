package postgres

import (
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

type playerDayRow struct {
	ID          int64          `db:"id"`
	PlayerID    string         `db:"player_public_id"`
	PlayerName  string         `db:"player_name"`
	TeamID      string         `db:"team_public_id"`
	SeasonID    int64          `db:"season_id"`
	WeekID      string         `db:"week_public_id"`
	Date        time.Time      `db:"stat_date"`
	Group       string         `db:"position_group"`
	BestPos     string         `db:"best_pos"`
	FullPos     string         `db:"full_pos"`
	Added       bool           `db:"added"`
	MissedStart bool           `db:"missed_start"`
	BenchStart  bool           `db:"bench_start"`
	Stats       []byte         `db:"stats"`
	Rating      statline.Value `db:"rating"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r playerDayRow) toDomain() (statline.PlayerDayRecord, error) {
	stats, err := decodeStats(r.Stats)
	if err != nil {
		return statline.PlayerDayRecord{}, fmt.Errorf("player day player=%s team=%s date=%s: %w",
			r.PlayerID, r.TeamID, r.Date.UTC().Format("2006-01-02"), err)
	}
	return statline.PlayerDayRecord{
		ID:          strconv.FormatInt(r.ID, 10),
		PlayerID:    r.PlayerID,
		PlayerName:  r.PlayerName,
		TeamID:      r.TeamID,
		SeasonID:    r.SeasonID,
		WeekID:      r.WeekID,
		Date:        r.Date.UTC(),
		Group:       statline.PositionGroup(r.Group),
		BestPos:     r.BestPos,
		FullPos:     r.FullPos,
		Added:       r.Added,
		MissedStart: r.MissedStart,
		BenchStart:  r.BenchStart,
		Stats:       stats,
		Rating:      r.Rating,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

type playerDayInsertModel struct {
	PlayerID    string         `db:"player_public_id"`
	PlayerName  string         `db:"player_name"`
	TeamID      string         `db:"team_public_id"`
	SeasonID    int64          `db:"season_id"`
	WeekID      string         `db:"week_public_id"`
	Date        time.Time      `db:"stat_date"`
	Group       string         `db:"position_group"`
	BestPos     string         `db:"best_pos"`
	FullPos     string         `db:"full_pos"`
	Added       bool           `db:"added"`
	MissedStart bool           `db:"missed_start"`
	BenchStart  bool           `db:"bench_start"`
	Stats       []byte         `db:"stats"`
	Rating      statline.Value `db:"rating"`
}

type teamDayRow struct {
	ID            int64          `db:"id"`
	TeamID        string         `db:"team_public_id"`
	SeasonID      int64          `db:"season_id"`
	WeekID        string         `db:"week_public_id"`
	Date          time.Time      `db:"stat_date"`
	SkaterStarted bool           `db:"skater_started"`
	GoalieStarted bool           `db:"goalie_started"`
	Adds          int            `db:"adds"`
	MissedStarts  int            `db:"missed_starts"`
	BenchStarts   int            `db:"bench_starts"`
	Stats         []byte         `db:"stats"`
	Rating        statline.Value `db:"rating"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r teamDayRow) toDomain() (statline.TeamDayRecord, error) {
	stats, err := decodeStats(r.Stats)
	if err != nil {
		return statline.TeamDayRecord{}, fmt.Errorf("team day team=%s date=%s: %w",
			r.TeamID, r.Date.UTC().Format("2006-01-02"), err)
	}
	return statline.TeamDayRecord{
		ID:            strconv.FormatInt(r.ID, 10),
		TeamID:        r.TeamID,
		SeasonID:      r.SeasonID,
		WeekID:        r.WeekID,
		Date:          r.Date.UTC(),
		SkaterStarted: r.SkaterStarted,
		GoalieStarted: r.GoalieStarted,
		Adds:          r.Adds,
		MissedStarts:  r.MissedStarts,
		BenchStarts:   r.BenchStarts,
		Stats:         stats,
		Rating:        r.Rating,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

type teamDayInsertModel struct {
	TeamID        string         `db:"team_public_id"`
	SeasonID      int64          `db:"season_id"`
	WeekID        string         `db:"week_public_id"`
	Date          time.Time      `db:"stat_date"`
	SkaterStarted bool           `db:"skater_started"`
	GoalieStarted bool           `db:"goalie_started"`
	Adds          int            `db:"adds"`
	MissedStarts  int            `db:"missed_starts"`
	BenchStarts   int            `db:"bench_starts"`
	Stats         []byte         `db:"stats"`
	Rating        statline.Value `db:"rating"`
}

type teamWeekRow struct {
	ID            int64          `db:"id"`
	TeamID        string         `db:"team_public_id"`
	SeasonID      int64          `db:"season_id"`
	WeekID        string         `db:"week_public_id"`
	Days          int            `db:"days"`
	SkaterStarted bool           `db:"skater_started"`
	GoalieStarted bool           `db:"goalie_started"`
	Adds          int            `db:"adds"`
	MissedStarts  int            `db:"missed_starts"`
	BenchStarts   int            `db:"bench_starts"`
	Stats         []byte         `db:"stats"`
	Rating        statline.Value `db:"rating"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r teamWeekRow) toDomain() (statline.TeamWeekRecord, error) {
	stats, err := decodeStats(r.Stats)
	if err != nil {
		return statline.TeamWeekRecord{}, fmt.Errorf("team week team=%s week=%s: %w", r.TeamID, r.WeekID, err)
	}
	return statline.TeamWeekRecord{
		ID:            strconv.FormatInt(r.ID, 10),
		TeamID:        r.TeamID,
		SeasonID:      r.SeasonID,
		WeekID:        r.WeekID,
		Days:          r.Days,
		SkaterStarted: r.SkaterStarted,
		GoalieStarted: r.GoalieStarted,
		Adds:          r.Adds,
		MissedStarts:  r.MissedStarts,
		BenchStarts:   r.BenchStarts,
		Stats:         stats,
		Rating:        r.Rating,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

type teamWeekInsertModel struct {
	TeamID        string         `db:"team_public_id"`
	SeasonID      int64          `db:"season_id"`
	WeekID        string         `db:"week_public_id"`
	Days          int            `db:"days"`
	SkaterStarted bool           `db:"skater_started"`
	GoalieStarted bool           `db:"goalie_started"`
	Adds          int            `db:"adds"`
	MissedStarts  int            `db:"missed_starts"`
	BenchStarts   int            `db:"bench_starts"`
	Stats         []byte         `db:"stats"`
	Rating        statline.Value `db:"rating"`
}

type playerWeekRow struct {
	ID         int64          `db:"id"`
	PlayerID   string         `db:"player_public_id"`
	PlayerName string         `db:"player_name"`
	TeamID     string         `db:"team_public_id"`
	SeasonID   int64          `db:"season_id"`
	WeekID     string         `db:"week_public_id"`
	Group      string         `db:"position_group"`
	Days       int            `db:"days"`
	Stats      []byte         `db:"stats"`
	Rating     statline.Value `db:"rating"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r playerWeekRow) toDomain() (statline.PlayerWeekRecord, error) {
	stats, err := decodeStats(r.Stats)
	if err != nil {
		return statline.PlayerWeekRecord{}, fmt.Errorf("player week player=%s team=%s week=%s: %w",
			r.PlayerID, r.TeamID, r.WeekID, err)
	}
	return statline.PlayerWeekRecord{
		ID:         strconv.FormatInt(r.ID, 10),
		PlayerID:   r.PlayerID,
		PlayerName: r.PlayerName,
		TeamID:     r.TeamID,
		SeasonID:   r.SeasonID,
		WeekID:     r.WeekID,
		Group:      statline.PositionGroup(r.Group),
		Days:       r.Days,
		Stats:      stats,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

type playerWeekInsertModel struct {
	PlayerID   string         `db:"player_public_id"`
	PlayerName string         `db:"player_name"`
	TeamID     string         `db:"team_public_id"`
	SeasonID   int64          `db:"season_id"`
	WeekID     string         `db:"week_public_id"`
	Group      string         `db:"position_group"`
	Days       int            `db:"days"`
	Stats      []byte         `db:"stats"`
	Rating     statline.Value `db:"rating"`
}
