package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/core/port"
)

// testNow is Monday 2024-01-01 10:30 UTC.
var testNow = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

func TestSpendAggregatesEmptyBrand(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	svc := newTestService(repo)

	daily, err := svc.DailySpend(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.True(t, daily.IsZero())

	monthly, err := svc.MonthlySpend(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.True(t, monthly.IsZero())
}

func TestDailyExcludesOtherDaysMonthlyIncludesThem(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)

	repo.addSpend(campaign.ID, "40.00", testNow.Add(-time.Hour))
	// earlier in the same month, not today
	repo.addSpend(campaign.ID, "25.00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond))
	svc := newTestService(repo)

	daily, err := svc.DailySpend(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.True(t, daily.Equal(decimal.RequireFromString("40.00")), "daily = %s", daily)

	// the 25.00 record belongs to December, so January's monthly window
	// excludes it too — but a mid-month record is included
	repo.addSpend(campaign.ID, "25.00", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

	daily, err = svc.DailySpend(context.Background(), brand, now)
	require.NoError(t, err)
	assert.True(t, daily.IsZero())

	monthly, err := svc.MonthlySpend(context.Background(), brand, now)
	require.NoError(t, err)
	assert.True(t, monthly.Equal(decimal.RequireFromString("65.00")), "monthly = %s", monthly)
}

func TestIsBudgetExceededStrictComparison(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	svc := newTestService(repo)

	// 50 + 30 = 80 under the daily budget
	repo.addSpend(campaign.ID, "50.00", testNow.Add(-2*time.Hour))
	repo.addSpend(campaign.ID, "30.00", testNow.Add(-time.Hour))
	exceeded, err := svc.IsBudgetExceeded(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.False(t, exceeded)

	// exactly 100 is not exceeded
	repo.addSpend(campaign.ID, "20.00", testNow.Add(-time.Minute))
	exceeded, err = svc.IsBudgetExceeded(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.False(t, exceeded)

	// one cent over is
	repo.addSpend(campaign.ID, "0.01", testNow)
	exceeded, err = svc.IsBudgetExceeded(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.True(t, exceeded)
}

func TestIsBudgetExceededDailyAlone(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	repo.addSpend(campaign.ID, "150.00", testNow.Add(-time.Hour))
	svc := newTestService(repo)

	exceeded, err := svc.IsBudgetExceeded(context.Background(), brand, testNow)
	require.NoError(t, err)
	assert.True(t, exceeded)
}

func TestIsBudgetExceededMonthlyAlone(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("500.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	// spread across the month so no single day breaks the daily budget
	for day := 2; day <= 8; day++ {
		repo.addSpend(campaign.ID, "500.00", time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC))
	}
	svc := newTestService(repo)

	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	exceeded, err := svc.IsBudgetExceeded(context.Background(), brand, now)
	require.NoError(t, err)
	assert.True(t, exceeded)
}

func TestShouldBeActiveRequiresBudgetAndSchedule(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, false)
	repo.addSchedule(campaign.ID, 0, 9, 17)
	svc := newTestService(repo)

	should, err := svc.ShouldBeActive(context.Background(), campaign, testNow)
	require.NoError(t, err)
	assert.True(t, should)

	// outside the window
	should, err = svc.ShouldBeActive(context.Background(), campaign, testNow.Add(8*time.Hour))
	require.NoError(t, err)
	assert.False(t, should)

	// over budget gates even an in-schedule moment
	repo.addSpend(campaign.ID, "150.00", testNow.Add(-time.Hour))
	should, err = svc.ShouldBeActive(context.Background(), campaign, testNow)
	require.NoError(t, err)
	assert.False(t, should)
}

func TestShouldBeActiveNoSchedulesNeverActive(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	svc := newTestService(repo)

	should, err := svc.ShouldBeActive(context.Background(), campaign, testNow)
	require.NoError(t, err)
	assert.False(t, should)
}

func TestReconcileIdempotent(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, false)
	repo.addSchedule(campaign.ID, 0, 9, 17)
	svc := newTestService(repo)

	changed, err := svc.Reconcile(context.Background(), campaign, testNow)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, campaign.IsActive)
	assert.Equal(t, 1, repo.activeWrites)

	changed, err = svc.Reconcile(context.Background(), campaign, testNow)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, campaign.IsActive)
	assert.Equal(t, 1, repo.activeWrites, "second reconcile must not write")
}

func TestDeactivateAllIgnoresScheduleAndIsolatesBrands(t *testing.T) {
	repo := newFakeRepo()
	brandA := repo.addBrand("100.00", "3000.00")
	brandB := repo.addBrand("100.00", "3000.00")
	a1 := repo.addCampaign(brandA.ID, true)
	a2 := repo.addCampaign(brandA.ID, true)
	b1 := repo.addCampaign(brandB.ID, true)
	repo.addSchedule(a1.ID, 0, 0, 23) // in schedule, still deactivated
	svc := newTestService(repo)

	require.NoError(t, svc.DeactivateAll(context.Background(), brandA.ID))

	assert.False(t, repo.campaigns[a1.ID].IsActive)
	assert.False(t, repo.campaigns[a2.ID].IsActive)
	assert.True(t, repo.campaigns[b1.ID].IsActive, "other brand must be untouched")
}

func TestReactivateEligibleLeavesOverBudgetBrandAlone(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("10000.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, false)
	repo.addSchedule(campaign.ID, 0, 0, 23)
	repo.addSpend(campaign.ID, "3500.00", time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC))
	svc := newTestService(repo)

	// still inside the exceeded month: nothing changes
	later := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ReactivateEligible(context.Background(), brand, later))
	assert.False(t, repo.campaigns[campaign.ID].IsActive)

	// evaluated against the next month the ledger no longer counts,
	// so the campaign reactivates
	nextMonth := time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC) // a Monday
	require.NoError(t, svc.ReactivateEligible(context.Background(), brand, nextMonth))
	assert.True(t, repo.campaigns[campaign.ID].IsActive)
}

func TestRecordSpendRunsReactivationHook(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, false)
	repo.addSchedule(campaign.ID, 0, 9, 17)
	svc := newTestService(repo)

	rec, err := svc.RecordSpend(context.Background(), campaign.ID, decimal.RequireFromString("30.00"), testNow)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, testNow, rec.RecordedAt)
	assert.True(t, repo.campaigns[campaign.ID].IsActive, "under-budget spend reactivates an eligible campaign")
}

func TestRecordSpendNeverDeactivates(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	repo.addSchedule(campaign.ID, 0, 9, 17)
	svc := newTestService(repo)

	// pushes the brand over its daily budget, but the post-spend hook
	// only reactivates; only the budget check deactivates
	_, err := svc.RecordSpend(context.Background(), campaign.ID, decimal.RequireFromString("150.00"), testNow)
	require.NoError(t, err)
	assert.True(t, repo.campaigns[campaign.ID].IsActive)

	require.NoError(t, svc.CheckAllBudgets(context.Background(), testNow))
	assert.False(t, repo.campaigns[campaign.ID].IsActive)
}

func TestRecordSpendRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	svc := newTestService(repo)

	for _, amount := range []string{"0", "-5.00"} {
		_, err := svc.RecordSpend(context.Background(), campaign.ID, decimal.RequireFromString(amount), testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.Empty(t, repo.records)
}

func TestRecordSpendUnknownCampaign(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.RecordSpend(context.Background(), 42, decimal.RequireFromString("10.00"), testNow)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestRecordSpendDefaultsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	brand := repo.addBrand("100.00", "3000.00")
	campaign := repo.addCampaign(brand.ID, true)
	svc := newTestService(repo)

	before := time.Now()
	rec, err := svc.RecordSpend(context.Background(), campaign.ID, decimal.RequireFromString("10.00"), time.Time{})
	require.NoError(t, err)
	assert.False(t, rec.RecordedAt.Before(before))
}
