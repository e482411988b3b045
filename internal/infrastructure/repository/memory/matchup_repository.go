package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/platform/id"
)

type MatchupRepository struct {
	mu    sync.RWMutex
	items map[string]matchup.Matchup
	idGen id.Generator
	now   func() time.Time
}

func NewMatchupRepository(matchups []matchup.Matchup, idGen id.Generator) *MatchupRepository {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	items := make(map[string]matchup.Matchup, len(matchups))
	for _, m := range matchups {
		items[m.Key()] = m
	}
	return &MatchupRepository{items: items, idGen: idGen, now: time.Now}
}

func (r *MatchupRepository) ListByWeek(_ context.Context, seasonID int64, weekID string) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0)
	for _, m := range r.items {
		if m.SeasonID == seasonID && m.WeekID == weekID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HomeTeamID != out[j].HomeTeamID {
			return out[i].HomeTeamID < out[j].HomeTeamID
		}
		return out[i].AwayTeamID < out[j].AwayTeamID
	})
	return out, nil
}

func (r *MatchupRepository) Upsert(_ context.Context, m matchup.Matchup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now()
	key := m.Key()
	if existing, ok := r.items[key]; ok {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = stamp
	} else {
		if m.ID == "" {
			generated, err := r.idGen.NewID()
			if err != nil {
				return err
			}
			m.ID = generated
		}
		m.CreatedAt = stamp
		m.UpdatedAt = stamp
	}
	r.items[key] = m
	return nil
}
