package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

// JobWindow is one hour range (start inclusive, end exclusive) in the
// league's local time during which scheduled jobs are allowed to run. The
// scraper has a daily request quota; running outside game hours burns it for
// nothing.
type JobWindow struct {
	StartHour int
	EndHour   int
}

func (w JobWindow) Contains(t time.Time) bool {
	hour := t.Hour()
	if w.StartHour <= w.EndHour {
		return hour >= w.StartHour && hour < w.EndHour
	}
	// window wraps midnight
	return hour >= w.StartHour || hour < w.EndHour
}

// ParseJobWindows parses "17-23,8-10" into hour windows.
func ParseJobWindows(raw string) ([]JobWindow, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]JobWindow, 0, len(parts))
	for _, part := range parts {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("%w: job window %q must be start-end", ErrInvalidInput, part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: job window start %q: %v", ErrInvalidInput, bounds[0], err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: job window end %q: %v", ErrInvalidInput, bounds[1], err)
		}
		if start < 0 || start > 23 || end < 0 || end > 24 {
			return nil, fmt.Errorf("%w: job window %q out of range", ErrInvalidInput, part)
		}
		out = append(out, JobWindow{StartHour: start, EndHour: end})
	}
	return out, nil
}

type JobInput struct {
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	WeekID   string `json:"weekId" validate:"omitempty,max=64"`
	SeasonID int64  `json:"seasonId" validate:"omitempty,gt=0"`
	Force    bool   `json:"force"`
}

type JobResult struct {
	Job       string `json:"job"`
	Ran       bool   `json:"ran"`
	SkipCause string `json:"skipCause,omitempty"`
	Detail    any    `json:"detail,omitempty"`
}

// JobOrchestratorService is the scheduling boundary: time-windowed triggers
// land here and are turned into pipeline runs. Outside the declared windows
// a trigger is a logged no-op unless forced.
type JobOrchestratorService struct {
	dailySync  *DailySyncService
	rollup     *WeekRollupService
	matchups   *MatchupService
	backfill   *BackfillService
	contextSvc *SeasonContextService
	windows    []JobWindow
	location   *time.Location
	now        func() time.Time
	logger     *logging.Logger
}

func NewJobOrchestratorService(
	dailySync *DailySyncService,
	rollup *WeekRollupService,
	matchups *MatchupService,
	backfill *BackfillService,
	contextSvc *SeasonContextService,
	windows []JobWindow,
	location *time.Location,
	logger *logging.Logger,
) *JobOrchestratorService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &JobOrchestratorService{
		dailySync:  dailySync,
		rollup:     rollup,
		matchups:   matchups,
		backfill:   backfill,
		contextSvc: contextSvc,
		windows:    windows,
		location:   location,
		now:        time.Now,
		logger:     logger,
	}
}

// RunDailySync scrapes and aggregates one date (default: today in league
// time), then refreshes that date's week aggregates and matchup scores so
// partial-week standings stay current.
func (s *JobOrchestratorService) RunDailySync(ctx context.Context, input JobInput) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunDailySync")
	defer span.End()

	result := JobResult{Job: "daily-sync"}
	if skip, cause := s.shouldSkip(input.Force); skip {
		s.logger.InfoContext(ctx, "daily sync outside job window, skipping", "cause", cause)
		result.SkipCause = cause
		return result, nil
	}

	date, err := s.resolveDate(input.Date)
	if err != nil {
		return result, err
	}

	syncResult, err := s.dailySync.Run(ctx, date)
	if err != nil {
		return result, err
	}

	rollupResult, err := s.rollup.Run(ctx, syncResult.WeekID)
	if err != nil {
		return result, err
	}
	resolveResult, err := s.matchups.ResolveWeek(ctx, syncResult.WeekID)
	if err != nil {
		return result, err
	}

	result.Ran = true
	result.Detail = map[string]any{
		"sync":     syncResult,
		"rollup":   rollupResult,
		"matchups": resolveResult,
	}
	return result, nil
}

// RunWeeklyRollup recomputes week aggregates for an explicit week id, or for
// the week covering the given date.
func (s *JobOrchestratorService) RunWeeklyRollup(ctx context.Context, input JobInput) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunWeeklyRollup")
	defer span.End()

	result := JobResult{Job: "weekly-rollup"}
	weekID, err := s.resolveWeekID(ctx, input)
	if err != nil {
		return result, err
	}

	detail, err := s.rollup.Run(ctx, weekID)
	if err != nil {
		return result, err
	}
	result.Ran = true
	result.Detail = detail
	return result, nil
}

// RunResolveMatchups re-scores a week's matchups.
func (s *JobOrchestratorService) RunResolveMatchups(ctx context.Context, input JobInput) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunResolveMatchups")
	defer span.End()

	result := JobResult{Job: "resolve-matchups"}
	weekID, err := s.resolveWeekID(ctx, input)
	if err != nil {
		return result, err
	}

	detail, err := s.matchups.ResolveWeek(ctx, weekID)
	if err != nil {
		return result, err
	}
	result.Ran = true
	result.Detail = detail
	return result, nil
}

// RunBackfill replays a whole season through the pipeline.
func (s *JobOrchestratorService) RunBackfill(ctx context.Context, input JobInput) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunBackfill")
	defer span.End()

	result := JobResult{Job: "backfill"}
	if s.backfill == nil {
		return result, fmt.Errorf("%w: backfill service is not configured", ErrDependencyUnavailable)
	}
	if input.SeasonID <= 0 {
		return result, fmt.Errorf("%w: seasonId is required for backfill", ErrInvalidInput)
	}

	detail, err := s.backfill.RunSeason(ctx, input.SeasonID)
	if err != nil {
		return result, err
	}
	result.Ran = true
	result.Detail = detail
	return result, nil
}

func (s *JobOrchestratorService) shouldSkip(force bool) (bool, string) {
	if force || len(s.windows) == 0 {
		return false, ""
	}
	localNow := s.now().In(s.location)
	for _, window := range s.windows {
		if window.Contains(localNow) {
			return false, ""
		}
	}
	return true, fmt.Sprintf("outside job windows at %s", localNow.Format("15:04"))
}

func (s *JobOrchestratorService) resolveDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return season.Day(s.now().In(s.location)), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return season.Day(date), nil
}

func (s *JobOrchestratorService) resolveWeekID(ctx context.Context, input JobInput) (string, error) {
	if strings.TrimSpace(input.WeekID) != "" {
		return input.WeekID, nil
	}
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return "", err
	}
	sctx, err := s.contextSvc.Resolve(ctx, date)
	if err != nil {
		return "", err
	}
	return sctx.Week.ID, nil
}
