package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	basecache "github.com/riskibarqy/hockey-league/internal/platform/cache"
)

// SeasonRepository caches season and week lookups. The calendar is
// read-mostly reference data; the TTL bounds how stale a week's completed
// flag can appear to the pipeline.
type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetSeasonByDate(ctx context.Context, date time.Time) (season.Season, bool, error) {
	key := "season:date:" + date.UTC().Format(time.DateOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetSeasonByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetSeasonByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	key := "season:id:" + strconv.FormatInt(seasonID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetSeasonByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetWeekByDate(ctx context.Context, seasonID int64, date time.Time) (season.Week, bool, error) {
	key := "week:season:" + strconv.FormatInt(seasonID, 10) + ":date:" + date.UTC().Format(time.DateOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetWeekByDate(ctx, seasonID, date)
		if err != nil {
			return nil, err
		}
		return cachedWeek{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Week{}, false, err
	}

	cached, _ := v.(cachedWeek)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetWeekByID(ctx context.Context, weekID string) (season.Week, bool, error) {
	key := "week:id:" + weekID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetWeekByID(ctx, weekID)
		if err != nil {
			return nil, err
		}
		return cachedWeek{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Week{}, false, err
	}

	cached, _ := v.(cachedWeek)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListWeeksBySeason(ctx context.Context, seasonID int64) ([]season.Week, error) {
	key := "week:season:" + strconv.FormatInt(seasonID, 10) + ":list"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListWeeksBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]season.Week(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Week)
	return append([]season.Week(nil), items...), nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}

type cachedWeek struct {
	value  season.Week
	exists bool
}

// TeamRepository caches the per-season team list.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID int64) ([]team.Team, error) {
	key := "team:season:" + strconv.FormatInt(seasonID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, seasonID int64, teamID string) (team.Team, bool, error) {
	key := "team:season:" + strconv.FormatInt(seasonID, 10) + ":id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}
