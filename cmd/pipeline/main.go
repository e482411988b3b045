package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hockey-league/internal/app"
	"github.com/riskibarqy/hockey-league/internal/config"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/usecase"
)

// One-shot pipeline runner. Runs a job inline against the configured
// storage, or enqueues it through QStash with -enqueue so the HTTP callback
// does the work instead.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	job := os.Args[1]
	flags := flag.NewFlagSet(job, flag.ExitOnError)
	date := flags.String("date", "", "target date (YYYY-MM-DD, default today in league time)")
	week := flags.String("week", "", "target week public id (default the week covering -date)")
	seasonID := flags.Int64("season", 0, "season id (backfill only)")
	force := flags.Bool("force", false, "run even outside the configured job windows")
	enqueue := flags.Bool("enqueue", false, "enqueue via QStash instead of running inline")
	delay := flags.Duration("delay", 0, "enqueue delay (with -enqueue)")
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	input := usecase.JobInput{
		Date:     *date,
		WeekID:   *week,
		SeasonID: *seasonID,
		Force:    *force,
	}

	if *enqueue {
		if err := enqueueJob(ctx, application, job, input, *delay); err != nil {
			logger.Error("enqueue job", "job", job, "error", err)
			os.Exit(1)
		}
		logger.Info("job enqueued", "job", job, "delay", *delay)
		return
	}

	result, err := runJob(ctx, application, job, input)
	if err != nil {
		logger.Error("job failed", "job", job, "error", err)
		os.Exit(1)
	}

	out, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func runJob(ctx context.Context, application *app.App, job string, input usecase.JobInput) (usecase.JobResult, error) {
	switch job {
	case "daily-sync":
		return application.Orchestrator.RunDailySync(ctx, input)
	case "weekly-rollup":
		return application.Orchestrator.RunWeeklyRollup(ctx, input)
	case "resolve-matchups":
		return application.Orchestrator.RunResolveMatchups(ctx, input)
	case "backfill":
		return application.Orchestrator.RunBackfill(ctx, input)
	default:
		printUsage()
		return usecase.JobResult{}, fmt.Errorf("unknown job %q", job)
	}
}

func enqueueJob(ctx context.Context, application *app.App, job string, input usecase.JobInput, delay time.Duration) error {
	if application.Scheduler == nil {
		return fmt.Errorf("QSTASH_ENABLED=true is required for -enqueue")
	}

	switch job {
	case "daily-sync":
		date := time.Now().UTC()
		if input.Date != "" {
			parsed, err := time.Parse(time.DateOnly, input.Date)
			if err != nil {
				return fmt.Errorf("invalid -date %q: %w", input.Date, err)
			}
			date = parsed
		}
		return application.Scheduler.ScheduleDailySync(ctx, date, delay)
	case "weekly-rollup":
		if input.WeekID == "" {
			return fmt.Errorf("-week is required for weekly-rollup -enqueue")
		}
		return application.Scheduler.ScheduleWeeklyRollup(ctx, input.WeekID, delay)
	case "resolve-matchups":
		if input.WeekID == "" {
			return fmt.Errorf("-week is required for resolve-matchups -enqueue")
		}
		return application.Scheduler.ScheduleResolveMatchups(ctx, input.WeekID, delay)
	default:
		return fmt.Errorf("job %q cannot be enqueued", job)
	}
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <daily-sync|weekly-rollup|resolve-matchups|backfill> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s daily-sync -date 2026-01-02\n", prog)
	fmt.Fprintf(os.Stderr, "  %s weekly-rollup -week 2526-w13\n", prog)
	fmt.Fprintf(os.Stderr, "  %s backfill -season 7 -force\n", prog)
	fmt.Fprintf(os.Stderr, "  %s daily-sync -enqueue -delay 30m\n", prog)
}
