package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/core/port"
	"ad-agency/internal/metrics"
)

// Service implements the activation engine: the budget and dayparting
// evaluators and the reconciliation paths that keep the persisted
// is_active flag consistent with them. All calendar arithmetic happens
// in the configured reference zone; now is always an explicit parameter
// so the engine is deterministic under test.
type Service struct {
	repo port.Repository
	loc  *time.Location
	log  *slog.Logger
	met  *metrics.Metrics
}

// NewService creates the engine. loc is the reference time zone for
// daily and monthly windows as well as weekday/hour evaluation.
func NewService(repo port.Repository, loc *time.Location, logger *slog.Logger, met *metrics.Metrics) *Service {
	return &Service{repo: repo, loc: loc, log: logger, met: met}
}

// Now returns the current time in the engine's reference zone.
func (s *Service) Now() time.Time {
	return time.Now().In(s.loc)
}

// DailySpend sums the brand's ledger entries recorded on now's calendar
// date in the reference zone. A brand with no campaigns or records
// yields zero.
func (s *Service) DailySpend(ctx context.Context, brand *domain.Brand, now time.Time) (decimal.Decimal, error) {
	day := startOfDay(now.In(s.loc))
	return s.repo.BrandSpendBetween(ctx, brand.ID, day, day.AddDate(0, 0, 1))
}

// MonthlySpend sums the brand's ledger entries recorded at or after the
// first instant of now's calendar month in the reference zone.
func (s *Service) MonthlySpend(ctx context.Context, brand *domain.Brand, now time.Time) (decimal.Decimal, error) {
	return s.repo.BrandSpendSince(ctx, brand.ID, startOfMonth(now.In(s.loc)))
}

// IsBudgetExceeded reports whether daily or monthly spend is strictly
// greater than the corresponding budget. Spend exactly equal to a
// budget is not exceeded.
func (s *Service) IsBudgetExceeded(ctx context.Context, brand *domain.Brand, now time.Time) (bool, error) {
	daily, err := s.DailySpend(ctx, brand, now)
	if err != nil {
		return false, err
	}
	if daily.GreaterThan(brand.DailyBudget) {
		return true, nil
	}
	monthly, err := s.MonthlySpend(ctx, brand, now)
	if err != nil {
		return false, err
	}
	return monthly.GreaterThan(brand.MonthlyBudget), nil
}

// ShouldBeActive is the single activation rule: the brand is under
// budget and now falls inside one of the campaign's dayparting windows.
// The budget check short-circuits the schedule lookup.
func (s *Service) ShouldBeActive(ctx context.Context, campaign *domain.Campaign, now time.Time) (bool, error) {
	brand, err := s.repo.GetBrand(ctx, campaign.BrandID)
	if err != nil {
		return false, err
	}
	if brand == nil {
		return false, fmt.Errorf("brand %d: %w", campaign.BrandID, port.ErrNotFound)
	}
	exceeded, err := s.IsBudgetExceeded(ctx, brand, now)
	if err != nil {
		return false, err
	}
	if exceeded {
		return false, nil
	}
	schedules, err := s.repo.ListCampaignSchedules(ctx, campaign.ID)
	if err != nil {
		return false, err
	}
	return domain.WithinAnySchedule(schedules, now.In(s.loc)), nil
}

// Reconcile recomputes ShouldBeActive and persists it when it differs
// from the stored flag. It reports whether a write happened; re-running
// with unchanged inputs is a no-op.
func (s *Service) Reconcile(ctx context.Context, campaign *domain.Campaign, now time.Time) (bool, error) {
	should, err := s.ShouldBeActive(ctx, campaign, now)
	if err != nil {
		return false, err
	}
	if should == campaign.IsActive {
		return false, nil
	}
	changed, err := s.repo.SetCampaignActive(ctx, campaign.ID, should)
	if err != nil {
		return false, err
	}
	campaign.IsActive = should
	if changed {
		s.met.ActivationFlips.WithLabelValues(flipLabel(should)).Inc()
		s.log.Info("campaign reconciled",
			slog.Int64("campaign_id", campaign.ID),
			slog.Bool("is_active", should))
	}
	return changed, nil
}

// DeactivateAll unconditionally deactivates every campaign of the brand.
// Schedule eligibility is irrelevant once the brand is over budget.
func (s *Service) DeactivateAll(ctx context.Context, brandID int64) error {
	n, err := s.repo.DeactivateBrandCampaigns(ctx, brandID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.met.ActivationFlips.WithLabelValues("inactive").Add(float64(n))
		s.log.Info("brand campaigns deactivated",
			slog.Int64("brand_id", brandID),
			slog.Int64("count", n))
	}
	return nil
}

// ReactivateEligible reconciles every campaign of the brand when it is
// under budget. When the brand is still over budget it leaves campaigns
// as-is; only the budget-check path force-deactivates. Reconciliation
// failures are collected per campaign so one broken row does not stop
// the rest.
func (s *Service) ReactivateEligible(ctx context.Context, brand *domain.Brand, now time.Time) error {
	exceeded, err := s.IsBudgetExceeded(ctx, brand, now)
	if err != nil {
		return err
	}
	if exceeded {
		return nil
	}
	campaigns, err := s.repo.ListBrandCampaigns(ctx, brand.ID)
	if err != nil {
		return err
	}
	var errs error
	for i := range campaigns {
		if _, err := s.Reconcile(ctx, &campaigns[i], now); err != nil {
			errs = errors.Join(errs, fmt.Errorf("campaign %d: %w", campaigns[i].ID, err))
		}
	}
	return errs
}

// RecordSpend appends a ledger entry and runs the post-spend
// reactivation hook. The hook only reconciles when the brand is under
// budget; spend that pushes a brand over budget does not deactivate
// anything until the next periodic budget check runs.
func (s *Service) RecordSpend(ctx context.Context, campaignID int64, amount decimal.Decimal, at time.Time) (*domain.SpendRecord, error) {
	if at.IsZero() {
		at = s.Now()
	}
	rec := &domain.SpendRecord{
		CampaignID: campaignID,
		Amount:     amount,
		RecordedAt: at,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	campaign, err := s.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	if err := s.repo.CreateSpendRecord(ctx, rec); err != nil {
		return nil, err
	}
	s.met.SpendRecordsTotal.Inc()
	s.met.SpendAmountTotal.Add(amount.InexactFloat64())
	s.log.Debug("spend recorded",
		slog.Int64("campaign_id", campaignID),
		slog.String("amount", amount.String()))

	brand, err := s.repo.GetBrand(ctx, campaign.BrandID)
	if err != nil {
		return rec, err
	}
	if brand == nil {
		return rec, fmt.Errorf("brand %d: %w", campaign.BrandID, port.ErrNotFound)
	}
	if err := s.ReactivateEligible(ctx, brand, at); err != nil {
		return rec, err
	}
	return rec, nil
}

func flipLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
