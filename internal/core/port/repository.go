package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
)

// ErrNotFound is returned when a referenced brand or campaign does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSchedule is returned when an identical (campaign, day,
// start, end) window already exists.
var ErrDuplicateSchedule = errors.New("duplicate schedule window")

// Repository defines the persistence layer for the activation engine. It
// is an outbound port in hexagonal architecture. Implementations must
// provide atomic single-row updates so concurrent reconciliations degrade
// to last-write-wins rather than lost updates.
type Repository interface {
	// CreateBrand stores a new brand and fills in its ID.
	CreateBrand(ctx context.Context, b *domain.Brand) error
	// GetBrand returns a brand by id, or nil when it does not exist.
	GetBrand(ctx context.Context, id int64) (*domain.Brand, error)
	// ListBrands returns all brands.
	ListBrands(ctx context.Context) ([]domain.Brand, error)

	// CreateCampaign stores a new campaign and fills in its ID.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// GetCampaign returns a campaign by id, or nil when it does not exist.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns every campaign across all brands.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// ListBrandCampaigns returns the campaigns owned by a brand.
	ListBrandCampaigns(ctx context.Context, brandID int64) ([]domain.Campaign, error)
	// SetCampaignActive writes the active flag in a single conditional
	// UPDATE. It reports whether a row actually changed, so re-running
	// with an unchanged flag is a no-op.
	SetCampaignActive(ctx context.Context, campaignID int64, active bool) (bool, error)
	// DeactivateBrandCampaigns unconditionally deactivates every campaign
	// of a brand and returns the number of rows flipped.
	DeactivateBrandCampaigns(ctx context.Context, brandID int64) (int64, error)

	// CreateSchedule stores a dayparting window. Duplicate windows are
	// rejected with ErrDuplicateSchedule.
	CreateSchedule(ctx context.Context, s *domain.Schedule) error
	// ListCampaignSchedules returns a campaign's dayparting windows.
	ListCampaignSchedules(ctx context.Context, campaignID int64) ([]domain.Schedule, error)

	// CreateSpendRecord appends one entry to the spend ledger.
	CreateSpendRecord(ctx context.Context, rec *domain.SpendRecord) error
	// BrandSpendBetween sums ledger amounts for a brand with
	// from <= recorded_at < to.
	BrandSpendBetween(ctx context.Context, brandID int64, from, to time.Time) (decimal.Decimal, error)
	// BrandSpendSince sums ledger amounts for a brand with recorded_at >= from.
	BrandSpendSince(ctx context.Context, brandID int64, from time.Time) (decimal.Decimal, error)
}
