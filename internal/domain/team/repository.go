package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Team, error)
	GetByID(ctx context.Context, seasonID int64, teamID string) (Team, bool, error)
}
