package usecase

import (
	"context"
	"fmt"
	"time"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/core/port"
)

// Management operations backing the HTTP admin surface. Brands,
// campaigns and schedules are created here out-of-band of the engine;
// the engine itself only ever mutates is_active.

func (s *Service) CreateBrand(ctx context.Context, b *domain.Brand) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.repo.CreateBrand(ctx, b)
}

// ListBrandOverviews returns every brand with its live daily and
// monthly spend and budget state, evaluated at now.
func (s *Service) ListBrandOverviews(ctx context.Context, now time.Time) ([]port.BrandOverview, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	overviews := make([]port.BrandOverview, 0, len(brands))
	for i := range brands {
		brand := &brands[i]
		daily, err := s.DailySpend(ctx, brand, now)
		if err != nil {
			return nil, fmt.Errorf("brand %d: %w", brand.ID, err)
		}
		monthly, err := s.MonthlySpend(ctx, brand, now)
		if err != nil {
			return nil, fmt.Errorf("brand %d: %w", brand.ID, err)
		}
		overviews = append(overviews, port.BrandOverview{
			Brand:          *brand,
			DailySpend:     daily,
			MonthlySpend:   monthly,
			BudgetExceeded: daily.GreaterThan(brand.DailyBudget) || monthly.GreaterThan(brand.MonthlyBudget),
		})
	}
	return overviews, nil
}

func (s *Service) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	brand, err := s.repo.GetBrand(ctx, c.BrandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("brand %d: %w", c.BrandID, port.ErrNotFound)
	}
	return s.repo.CreateCampaign(ctx, c)
}

// ListCampaignStatuses returns a brand's campaigns with their current
// dayparting eligibility at now.
func (s *Service) ListCampaignStatuses(ctx context.Context, brandID int64, now time.Time) ([]port.CampaignStatus, error) {
	brand, err := s.repo.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand %d: %w", brandID, port.ErrNotFound)
	}
	campaigns, err := s.repo.ListBrandCampaigns(ctx, brandID)
	if err != nil {
		return nil, err
	}
	statuses := make([]port.CampaignStatus, 0, len(campaigns))
	for _, c := range campaigns {
		schedules, err := s.repo.ListCampaignSchedules(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("campaign %d: %w", c.ID, err)
		}
		statuses = append(statuses, port.CampaignStatus{
			Campaign:       c,
			WithinSchedule: domain.WithinAnySchedule(schedules, now.In(s.loc)),
		})
	}
	return statuses, nil
}

func (s *Service) CreateSchedule(ctx context.Context, sch *domain.Schedule) error {
	if err := sch.Validate(); err != nil {
		return err
	}
	campaign, err := s.repo.GetCampaign(ctx, sch.CampaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return fmt.Errorf("campaign %d: %w", sch.CampaignID, port.ErrNotFound)
	}
	return s.repo.CreateSchedule(ctx, sch)
}

// SetCampaignActive is the manual override action. It writes the flag
// directly; the next reconcile re-derives it from budget and schedule.
func (s *Service) SetCampaignActive(ctx context.Context, campaignID int64, active bool) error {
	campaign, err := s.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	changed, err := s.repo.SetCampaignActive(ctx, campaignID, active)
	if err != nil {
		return err
	}
	if changed {
		s.met.ActivationFlips.WithLabelValues(flipLabel(active)).Inc()
	}
	return nil
}
