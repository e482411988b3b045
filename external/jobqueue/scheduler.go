package jobqueue

import (
	"context"
	"time"

	"github.com/riskibarqy/hockey-league/internal/usecase"
)

// Scheduler turns pipeline intents into queued job callbacks. Each method
// targets one of the internal job endpoints; the dedupe key pins one
// enqueue per (job, logical key).
type Scheduler struct {
	publisher *QStashPublisher
}

func NewScheduler(publisher *QStashPublisher) *Scheduler {
	return &Scheduler{publisher: publisher}
}

// ScheduleDailySync queues a sync for one date after the given delay.
func (s *Scheduler) ScheduleDailySync(ctx context.Context, date time.Time, delay time.Duration) error {
	day := date.UTC().Format("2006-01-02")
	payload := usecase.JobInput{Date: day}
	return s.publisher.Enqueue(ctx, "/v1/internal/jobs/daily-sync", payload, delay, dedupeKey("daily-sync", day))
}

// ScheduleWeeklyRollup queues a rollup for one week after the given delay.
func (s *Scheduler) ScheduleWeeklyRollup(ctx context.Context, weekID string, delay time.Duration) error {
	payload := usecase.JobInput{WeekID: weekID}
	return s.publisher.Enqueue(ctx, "/v1/internal/jobs/weekly-rollup", payload, delay, dedupeKey("weekly-rollup", weekID))
}

// ScheduleResolveMatchups queues a matchup re-score for one week.
func (s *Scheduler) ScheduleResolveMatchups(ctx context.Context, weekID string, delay time.Duration) error {
	payload := usecase.JobInput{WeekID: weekID}
	return s.publisher.Enqueue(ctx, "/v1/internal/jobs/resolve-matchups", payload, delay, dedupeKey("resolve-matchups", weekID))
}
