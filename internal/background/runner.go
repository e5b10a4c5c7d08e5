package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ad-agency/internal/config/configs"
	"ad-agency/internal/core/port"
)

// Runner drives the four periodic jobs. The budget check runs on a plain
// interval ticker; dayparting, daily reset and monthly reset are aligned
// to the next hour, midnight and first-of-month boundary in the engine's
// reference zone, matching their calendar semantics. All loops stop when
// the context is cancelled.
type Runner struct {
	jobs port.Jobs
	now  func() time.Time
	cfg  configs.Jobs
	log  *slog.Logger
}

// NewRunner creates a runner. now must return the current time in the
// reference zone; the engine's Now method is the usual source.
func NewRunner(jobs port.Jobs, now func() time.Time, cfg configs.Jobs, logger *slog.Logger) *Runner {
	return &Runner{jobs: jobs, now: now, cfg: cfg, log: logger}
}

// Start launches one goroutine per job and returns immediately.
func (r *Runner) Start(ctx context.Context) {
	go r.runInterval(ctx, "budget_check", r.cfg.BudgetCheckInterval, r.jobs.CheckAllBudgets)
	go r.runAligned(ctx, "dayparting_check", nextHour, r.jobs.CheckDayparting)
	go r.runAligned(ctx, "daily_reset", nextMidnight, r.jobs.ResetDailySpend)
	go r.runAligned(ctx, "monthly_reset", nextMonthStart, r.jobs.ResetMonthlySpend)
}

func (r *Runner) runInterval(ctx context.Context, name string, every time.Duration, job func(context.Context, time.Time) error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx, name, job)
		}
	}
}

func (r *Runner) runAligned(ctx context.Context, name string, next func(time.Time) time.Time, job func(context.Context, time.Time) error) {
	for {
		timer := time.NewTimer(time.Until(next(r.now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.runOnce(ctx, name, job)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, name string, job func(context.Context, time.Time) error) {
	runID := uuid.NewString()
	started := r.now()
	r.log.Info("job started",
		slog.String("job", name), slog.String("run_id", runID))

	err := job(ctx, started)
	attrs := []any{
		slog.String("job", name),
		slog.String("run_id", runID),
		slog.Duration("took", time.Since(started)),
	}
	if err != nil {
		r.log.Error("job failed", append(attrs, slog.Any("error", err))...)
		return
	}
	r.log.Info("job finished", attrs...)
}

// nextHour returns the next top of the hour after t in t's location.
func nextHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
}

// nextMidnight returns the first instant of the next calendar day in
// t's location.
func nextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// nextMonthStart returns the first instant of the next calendar month
// in t's location.
func nextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}
