package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/metrics"
)

// fakeRepo is a stateful in-memory repository. The budget scenarios need
// real aggregation over recorded spend, so a fake fits better here than
// expectation-based mocks. activeWrites counts SetCampaignActive calls
// that changed a row, which the idempotence tests assert on.
type fakeRepo struct {
	brands    map[int64]*domain.Brand
	campaigns map[int64]*domain.Campaign
	schedules map[int64][]domain.Schedule
	records   []domain.SpendRecord
	nextID    int64

	activeWrites int
	// spendErr, when set for a brand, fails its aggregate queries to
	// exercise the fail-soft paths.
	spendErr map[int64]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		brands:    make(map[int64]*domain.Brand),
		campaigns: make(map[int64]*domain.Campaign),
		schedules: make(map[int64][]domain.Schedule),
		spendErr:  make(map[int64]error),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) addBrand(daily, monthly string) *domain.Brand {
	b := &domain.Brand{
		ID:            f.id(),
		Name:          "brand",
		DailyBudget:   decimal.RequireFromString(daily),
		MonthlyBudget: decimal.RequireFromString(monthly),
	}
	f.brands[b.ID] = b
	return b
}

func (f *fakeRepo) addCampaign(brandID int64, active bool) *domain.Campaign {
	c := &domain.Campaign{ID: f.id(), BrandID: brandID, Name: "campaign", IsActive: active}
	f.campaigns[c.ID] = c
	return c
}

func (f *fakeRepo) addSchedule(campaignID int64, day, start, end int) {
	f.schedules[campaignID] = append(f.schedules[campaignID], domain.Schedule{
		ID: f.id(), CampaignID: campaignID, DayOfWeek: day, StartHour: start, EndHour: end,
	})
}

func (f *fakeRepo) addSpend(campaignID int64, amount string, at time.Time) {
	f.records = append(f.records, domain.SpendRecord{
		ID: f.id(), CampaignID: campaignID,
		Amount: decimal.RequireFromString(amount), RecordedAt: at,
	})
}

func (f *fakeRepo) CreateBrand(_ context.Context, b *domain.Brand) error {
	b.ID = f.id()
	f.brands[b.ID] = b
	return nil
}

func (f *fakeRepo) GetBrand(_ context.Context, id int64) (*domain.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) ListBrands(context.Context) ([]domain.Brand, error) {
	out := make([]domain.Brand, 0, len(f.brands))
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.brands[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	c.ID = f.id()
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeRepo) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, len(f.campaigns))
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.campaigns[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBrandCampaigns(ctx context.Context, brandID int64) ([]domain.Campaign, error) {
	all, _ := f.ListCampaigns(ctx)
	out := all[:0]
	for _, c := range all {
		if c.BrandID == brandID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetCampaignActive(_ context.Context, campaignID int64, active bool) (bool, error) {
	c, ok := f.campaigns[campaignID]
	if !ok || c.IsActive == active {
		return false, nil
	}
	c.IsActive = active
	f.activeWrites++
	return true, nil
}

func (f *fakeRepo) DeactivateBrandCampaigns(_ context.Context, brandID int64) (int64, error) {
	var n int64
	for _, c := range f.campaigns {
		if c.BrandID == brandID && c.IsActive {
			c.IsActive = false
			f.activeWrites++
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateSchedule(_ context.Context, s *domain.Schedule) error {
	s.ID = f.id()
	f.schedules[s.CampaignID] = append(f.schedules[s.CampaignID], *s)
	return nil
}

func (f *fakeRepo) ListCampaignSchedules(_ context.Context, campaignID int64) ([]domain.Schedule, error) {
	return f.schedules[campaignID], nil
}

func (f *fakeRepo) CreateSpendRecord(_ context.Context, rec *domain.SpendRecord) error {
	rec.ID = f.id()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeRepo) BrandSpendBetween(_ context.Context, brandID int64, from, to time.Time) (decimal.Decimal, error) {
	if err := f.spendErr[brandID]; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, rec := range f.records {
		c, ok := f.campaigns[rec.CampaignID]
		if !ok || c.BrandID != brandID {
			continue
		}
		if !rec.RecordedAt.Before(from) && rec.RecordedAt.Before(to) {
			total = total.Add(rec.Amount)
		}
	}
	return total, nil
}

func (f *fakeRepo) BrandSpendSince(ctx context.Context, brandID int64, from time.Time) (decimal.Decimal, error) {
	return f.BrandSpendBetween(ctx, brandID, from, farFuture)
}

var farFuture = time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, time.UTC, logger, metrics.New(prometheus.NewRegistry()))
}
