package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/statline"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// Test doubles for the external boundaries. The real roster provider and
// optimizer live outside this package; the pipeline only sees the interfaces.

type rosterProviderFunc func(ctx context.Context, teamID string, date time.Time) ([]RosterEntry, error)

func (f rosterProviderFunc) FetchTeamRoster(ctx context.Context, teamID string, date time.Time) ([]RosterEntry, error) {
	return f(ctx, teamID, date)
}

// groupSlotOptimizer slots everyone into their natural position group.
type groupSlotOptimizer struct {
	err error
}

func (o groupSlotOptimizer) Optimize(_ context.Context, roster []statline.PlayerDayRecord) ([]statline.PlayerDayRecord, error) {
	if o.err != nil {
		return nil, o.err
	}
	out := make([]statline.PlayerDayRecord, len(roster))
	copy(out, roster)
	for i := range out {
		out[i].BestPos = string(out[i].Group)
		out[i].FullPos = string(out[i].Group)
	}
	return out, nil
}

type fixedRater struct {
	score float64
	err   error
}

func (r fixedRater) Rate(context.Context, RatingInput) (RatingResult, error) {
	if r.err != nil {
		return RatingResult{}, r.err
	}
	return RatingResult{Score: r.score}, nil
}

func newSeededContextService() (*SeasonContextService, *memory.SeasonRepository) {
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedWeeks())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	return NewSeasonContextService(seasonRepo, teamRepo, logging.NewNop()), seasonRepo
}

func utcDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func skaterLine(playerID string, fullPos string, stats statline.Stats) statline.PlayerDayRecord {
	return statline.PlayerDayRecord{
		PlayerID: playerID,
		Group:    statline.GroupForward,
		BestPos:  "F",
		FullPos:  fullPos,
		Stats:    stats,
	}
}

func goalieLine(playerID string, fullPos string, stats statline.Stats) statline.PlayerDayRecord {
	return statline.PlayerDayRecord{
		PlayerID: playerID,
		Group:    statline.GroupGoalie,
		BestPos:  "G",
		FullPos:  fullPos,
		Stats:    stats,
	}
}
