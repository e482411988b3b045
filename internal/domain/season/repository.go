package season

import (
	"context"
	"time"
)

type Repository interface {
	GetSeasonByDate(ctx context.Context, date time.Time) (Season, bool, error)
	GetSeasonByID(ctx context.Context, seasonID int64) (Season, bool, error)
	GetWeekByDate(ctx context.Context, seasonID int64, date time.Time) (Week, bool, error)
	GetWeekByID(ctx context.Context, weekID string) (Week, bool, error)
	ListWeeksBySeason(ctx context.Context, seasonID int64) ([]Week, error)
}
