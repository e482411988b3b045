package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/hockey-league/internal/usecase"
)

type jobRunner func(context.Context, usecase.JobInput) (usecase.JobResult, error)

func (h *Handler) runJob(w http.ResponseWriter, r *http.Request, spanName, jobName string, run jobRunner) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	input, err := h.decodeJobInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "job run failed",
			"job", jobName, "date", input.Date, "week_id", input.WeekID,
			"season_id", input.SeasonID, "force", input.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunDailySyncJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunDailySyncJob", "daily-sync", h.jobOrchestrator.RunDailySync)
}

func (h *Handler) RunWeeklyRollupJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunWeeklyRollupJob", "weekly-rollup", h.jobOrchestrator.RunWeeklyRollup)
}

func (h *Handler) RunResolveMatchupsJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunResolveMatchupsJob", "resolve-matchups", h.jobOrchestrator.RunResolveMatchups)
}

func (h *Handler) RunBackfillJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunBackfillJob", "backfill", h.jobOrchestrator.RunBackfill)
}
