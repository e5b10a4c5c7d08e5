package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// The four periodic entry points. Each reads all state fresh from the
// repository, so invoking one at an arbitrary extra time is always safe.
// Failures are per entity: a brand or campaign that cannot be evaluated
// is logged and skipped, the rest of the batch still runs, and the
// joined error is returned to the caller.

// CheckAllBudgets deactivates every campaign of over-budget brands and
// reconciles the campaigns of brands under budget.
func (s *Service) CheckAllBudgets(ctx context.Context, now time.Time) error {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return s.finishJob("budget_check", err)
	}
	var errs error
	for i := range brands {
		brand := &brands[i]
		exceeded, err := s.IsBudgetExceeded(ctx, brand, now)
		if err != nil {
			errs = errors.Join(errs, s.brandErr(brand.ID, err))
			continue
		}
		if exceeded {
			if err := s.DeactivateAll(ctx, brand.ID); err != nil {
				errs = errors.Join(errs, s.brandErr(brand.ID, err))
			}
			continue
		}
		campaigns, err := s.repo.ListBrandCampaigns(ctx, brand.ID)
		if err != nil {
			errs = errors.Join(errs, s.brandErr(brand.ID, err))
			continue
		}
		for j := range campaigns {
			if _, err := s.Reconcile(ctx, &campaigns[j], now); err != nil {
				errs = errors.Join(errs, s.campaignErr(campaigns[j].ID, err))
			}
		}
	}
	return s.finishJob("budget_check", errs)
}

// CheckDayparting reconciles every campaign across all brands. The
// budget state still folds in through ShouldBeActive.
func (s *Service) CheckDayparting(ctx context.Context, now time.Time) error {
	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		return s.finishJob("dayparting_check", err)
	}
	var errs error
	for i := range campaigns {
		if _, err := s.Reconcile(ctx, &campaigns[i], now); err != nil {
			errs = errors.Join(errs, s.campaignErr(campaigns[i].ID, err))
		}
	}
	return s.finishJob("dayparting_check", errs)
}

// ResetDailySpend reactivates eligible campaigns after the daily window
// rolls over. Nothing is zeroed: daily spend is always derived from the
// current date window, so a new date yields zero on its own.
func (s *Service) ResetDailySpend(ctx context.Context, now time.Time) error {
	return s.finishJob("daily_reset", s.reactivateAllBrands(ctx, now))
}

// ResetMonthlySpend is the same operation at monthly cadence.
func (s *Service) ResetMonthlySpend(ctx context.Context, now time.Time) error {
	return s.finishJob("monthly_reset", s.reactivateAllBrands(ctx, now))
}

func (s *Service) reactivateAllBrands(ctx context.Context, now time.Time) error {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return err
	}
	var errs error
	for i := range brands {
		if err := s.ReactivateEligible(ctx, &brands[i], now); err != nil {
			errs = errors.Join(errs, s.brandErr(brands[i].ID, err))
		}
	}
	return errs
}

func (s *Service) finishJob(job string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.log.Error("job finished with errors",
			slog.String("job", job), slog.Any("error", err))
	}
	s.met.JobRuns.WithLabelValues(job, outcome).Inc()
	return err
}

func (s *Service) brandErr(id int64, err error) error {
	s.log.Error("brand evaluation failed",
		slog.Int64("brand_id", id), slog.Any("error", err))
	return fmt.Errorf("brand %d: %w", id, err)
}

func (s *Service) campaignErr(id int64, err error) error {
	s.log.Error("campaign reconciliation failed",
		slog.Int64("campaign_id", id), slog.Any("error", err))
	return fmt.Errorf("campaign %d: %w", id, err)
}
