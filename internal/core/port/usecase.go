package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
)

// Activation is the decision engine gating campaign eligibility. Every
// method takes now explicitly so behavior is deterministic under test;
// implementations convert it to their configured reference zone before
// any calendar arithmetic.
type Activation interface {
	// RecordSpend appends a ledger entry for the campaign and runs the
	// post-spend reactivation hook. A zero at defaults to the current
	// time. The hook only ever keeps campaigns active or leaves them
	// as-is; over-budget deactivation happens solely in the periodic
	// budget check.
	RecordSpend(ctx context.Context, campaignID int64, amount decimal.Decimal, at time.Time) (*domain.SpendRecord, error)

	// DailySpend sums the brand's ledger entries recorded on now's
	// calendar date.
	DailySpend(ctx context.Context, brand *domain.Brand, now time.Time) (decimal.Decimal, error)
	// MonthlySpend sums the brand's ledger entries recorded at or after
	// the first instant of now's calendar month.
	MonthlySpend(ctx context.Context, brand *domain.Brand, now time.Time) (decimal.Decimal, error)
	// IsBudgetExceeded reports whether daily or monthly spend is
	// strictly greater than the corresponding budget.
	IsBudgetExceeded(ctx context.Context, brand *domain.Brand, now time.Time) (bool, error)

	// ShouldBeActive is the single source of truth for activation:
	// under budget AND inside a dayparting window.
	ShouldBeActive(ctx context.Context, campaign *domain.Campaign, now time.Time) (bool, error)
	// Reconcile persists ShouldBeActive when it differs from the stored
	// flag. It reports whether a write happened and is idempotent.
	Reconcile(ctx context.Context, campaign *domain.Campaign, now time.Time) (bool, error)
	// DeactivateAll unconditionally deactivates every campaign of the
	// brand, bypassing schedule checks.
	DeactivateAll(ctx context.Context, brandID int64) error
	// ReactivateEligible reconciles every campaign of the brand when it
	// is under budget; when still over budget it does nothing.
	ReactivateEligible(ctx context.Context, brand *domain.Brand, now time.Time) error

	// Now returns the current time in the engine's reference zone.
	Now() time.Time
}

// Jobs are the four periodic entry points. Each reads all state fresh,
// is safe to invoke at arbitrary additional times and fails soft per
// entity: one broken brand or campaign does not stop the rest of the run.
type Jobs interface {
	// CheckAllBudgets deactivates every campaign of over-budget brands
	// and reconciles campaigns of brands under budget.
	CheckAllBudgets(ctx context.Context, now time.Time) error
	// CheckDayparting reconciles every campaign across all brands.
	CheckDayparting(ctx context.Context, now time.Time) error
	// ResetDailySpend reactivates eligible campaigns after the daily
	// window rolls over. No counter is zeroed; daily spend is always
	// derived from the current date window.
	ResetDailySpend(ctx context.Context, now time.Time) error
	// ResetMonthlySpend is ResetDailySpend at monthly cadence.
	ResetMonthlySpend(ctx context.Context, now time.Time) error
}

// Admin exposes the management surface: entity creation, status
// listings and the manual activate/deactivate override actions.
type Admin interface {
	CreateBrand(ctx context.Context, b *domain.Brand) error
	ListBrandOverviews(ctx context.Context, now time.Time) ([]BrandOverview, error)
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	ListCampaignStatuses(ctx context.Context, brandID int64, now time.Time) ([]CampaignStatus, error)
	CreateSchedule(ctx context.Context, s *domain.Schedule) error
	// SetCampaignActive force-writes the flag; the next reconcile
	// re-derives it from budget and schedule state.
	SetCampaignActive(ctx context.Context, campaignID int64, active bool) error
}

// BrandOverview is a brand with its live spend aggregates and budget
// state. It is a DTO for the HTTP layer and carries no behaviour.
type BrandOverview struct {
	Brand          domain.Brand
	DailySpend     decimal.Decimal
	MonthlySpend   decimal.Decimal
	BudgetExceeded bool
}

// CampaignStatus is a campaign with its current dayparting eligibility.
type CampaignStatus struct {
	Campaign       domain.Campaign
	WithinSchedule bool
}
