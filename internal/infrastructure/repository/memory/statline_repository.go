package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

type playerDayKey struct {
	playerID string
	teamID   string
	date     time.Time
}

type teamDayKey struct {
	teamID string
	date   time.Time
}

type teamWeekKey struct {
	teamID string
	weekID string
}

type playerWeekKey struct {
	playerID string
	teamID   string
	weekID   string
}

// StatlineRepository is the in-memory mirror of the postgres store. It keeps
// the same upsert-by-natural-key contract, including id and CreatedAt
// preservation across updates.
type StatlineRepository struct {
	mu          sync.RWMutex
	playerDays  map[playerDayKey]statline.PlayerDayRecord
	teamDays    map[teamDayKey]statline.TeamDayRecord
	teamWeeks   map[teamWeekKey]statline.TeamWeekRecord
	playerWeeks map[playerWeekKey]statline.PlayerWeekRecord
	nextID      int64
	now         func() time.Time
}

func NewStatlineRepository() *StatlineRepository {
	return &StatlineRepository{
		playerDays:  make(map[playerDayKey]statline.PlayerDayRecord),
		teamDays:    make(map[teamDayKey]statline.TeamDayRecord),
		teamWeeks:   make(map[teamWeekKey]statline.TeamWeekRecord),
		playerWeeks: make(map[playerWeekKey]statline.PlayerWeekRecord),
		nextID:      1,
		now:         time.Now,
	}
}

func (r *StatlineRepository) newID() string {
	id := strconv.FormatInt(r.nextID, 10)
	r.nextID++
	return id
}

func (r *StatlineRepository) ListPlayerDaysByTeamAndDate(_ context.Context, teamID string, date time.Time) ([]statline.PlayerDayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := season.Day(date)
	out := make([]statline.PlayerDayRecord, 0)
	for key, rec := range r.playerDays {
		if key.teamID == teamID && key.date.Equal(day) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *StatlineRepository) ListPlayerDaysByWeek(_ context.Context, weekID string) ([]statline.PlayerDayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.PlayerDayRecord, 0)
	for _, rec := range r.playerDays {
		if rec.WeekID == weekID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *StatlineRepository) UpsertPlayerDays(_ context.Context, teamID string, date time.Time, rows []statline.PlayerDayRecord, deleteMissing bool) (statline.SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := season.Day(date)
	stamp := r.now()
	keep := make(map[string]struct{}, len(rows))

	var result statline.SyncResult
	for _, rec := range rows {
		rec.TeamID = teamID
		rec.Date = day
		rec.Stats = rec.Stats.Clone()
		keep[rec.PlayerID] = struct{}{}

		key := playerDayKey{playerID: rec.PlayerID, teamID: teamID, date: day}
		if existing, ok := r.playerDays[key]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = stamp
			result.Updated++
		} else {
			rec.ID = r.newID()
			rec.CreatedAt = stamp
			rec.UpdatedAt = stamp
			result.Created++
		}
		r.playerDays[key] = rec
	}

	if deleteMissing {
		for key := range r.playerDays {
			if key.teamID != teamID || !key.date.Equal(day) {
				continue
			}
			if _, ok := keep[key.playerID]; !ok {
				delete(r.playerDays, key)
				result.Deleted++
			}
		}
	}
	return result, nil
}

func (r *StatlineRepository) ListTeamDaysByWeek(_ context.Context, weekID string) ([]statline.TeamDayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.TeamDayRecord, 0)
	for _, rec := range r.teamDays {
		if rec.WeekID == weekID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *StatlineRepository) UpsertTeamDay(_ context.Context, rec statline.TeamDayRecord) (statline.SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.Date = season.Day(rec.Date)
	rec.Stats = rec.Stats.Clone()
	stamp := r.now()

	var result statline.SyncResult
	key := teamDayKey{teamID: rec.TeamID, date: rec.Date}
	if existing, ok := r.teamDays[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.UpdatedAt = stamp
		result.Updated++
	} else {
		rec.ID = r.newID()
		rec.CreatedAt = stamp
		rec.UpdatedAt = stamp
		result.Created++
	}
	r.teamDays[key] = rec
	return result, nil
}

func (r *StatlineRepository) ListTeamWeeksByWeek(_ context.Context, weekID string) ([]statline.TeamWeekRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.TeamWeekRecord, 0)
	for key, rec := range r.teamWeeks {
		if key.weekID == weekID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *StatlineRepository) UpsertTeamWeeks(_ context.Context, rows []statline.TeamWeekRecord) (statline.SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now()
	var result statline.SyncResult
	for _, rec := range rows {
		rec.Stats = rec.Stats.Clone()
		key := teamWeekKey{teamID: rec.TeamID, weekID: rec.WeekID}
		if existing, ok := r.teamWeeks[key]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = stamp
			result.Updated++
		} else {
			rec.ID = r.newID()
			rec.CreatedAt = stamp
			rec.UpdatedAt = stamp
			result.Created++
		}
		r.teamWeeks[key] = rec
	}
	return result, nil
}

func (r *StatlineRepository) ListPlayerWeeksByWeek(_ context.Context, weekID string) ([]statline.PlayerWeekRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.PlayerWeekRecord, 0)
	for key, rec := range r.playerWeeks {
		if key.weekID == weekID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *StatlineRepository) UpsertPlayerWeeks(_ context.Context, rows []statline.PlayerWeekRecord) (statline.SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now()
	var result statline.SyncResult
	for _, rec := range rows {
		rec.Stats = rec.Stats.Clone()
		key := playerWeekKey{playerID: rec.PlayerID, teamID: rec.TeamID, weekID: rec.WeekID}
		if existing, ok := r.playerWeeks[key]; ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = stamp
			result.Updated++
		} else {
			rec.ID = r.newID()
			rec.CreatedAt = stamp
			rec.UpdatedAt = stamp
			result.Created++
		}
		r.playerWeeks[key] = rec
	}
	return result, nil
}
