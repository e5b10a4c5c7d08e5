package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// handleRunJob manually triggers one of the four periodic jobs:
// budget-check, dayparting-check, daily-reset or monthly-reset. The job
// runs in the background with a fresh context and its own timeout; the
// endpoint responds 202 on dispatch and 404 for unknown job names.
func (h *Handler) handleRunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "job")

	var run func(context.Context, time.Time) error
	switch name {
	case "budget-check":
		run = h.jobs.CheckAllBudgets
	case "dayparting-check":
		run = h.jobs.CheckDayparting
	case "daily-reset":
		run = h.jobs.ResetDailySpend
	case "monthly-reset":
		run = h.jobs.ResetMonthlySpend
	default:
		http.Error(w, "unknown job", http.StatusNotFound)
		return
	}

	now := h.engine.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := run(ctx, now); err != nil {
			h.logger.Error("manual job run failed",
				slog.String("job", name), slog.Any("error", err))
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}
