package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/core/port"
)

// Repository implements port.Repository using pgxpool for PostgreSQL.
// Activation writes are single-row UPDATEs, so concurrent reconciliations
// of the same campaign degrade to last-write-wins.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a new repository instance.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const uniqueViolation = "23505"

func (r *Repository) CreateBrand(ctx context.Context, b *domain.Brand) error {
	return r.pool.QueryRow(ctx, `INSERT INTO brands (name, daily_budget, monthly_budget)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		b.Name, b.DailyBudget, b.MonthlyBudget).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *Repository) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	var b domain.Brand
	err := r.pool.QueryRow(ctx, `SELECT id, name, daily_budget, monthly_budget, created_at, updated_at
		FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.DailyBudget, &b.MonthlyBudget, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, daily_budget, monthly_budget, created_at, updated_at
		FROM brands ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Brand, error) {
		var b domain.Brand
		err := row.Scan(&b.ID, &b.Name, &b.DailyBudget, &b.MonthlyBudget, &b.CreatedAt, &b.UpdatedAt)
		return b, err
	})
}

func (r *Repository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	return r.pool.QueryRow(ctx, `INSERT INTO campaigns (brand_id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		c.BrandID, c.Name, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, `SELECT id, brand_id, name, is_active, created_at, updated_at
		FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.BrandID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.queryCampaigns(ctx, `SELECT id, brand_id, name, is_active, created_at, updated_at
		FROM campaigns ORDER BY id`)
}

func (r *Repository) ListBrandCampaigns(ctx context.Context, brandID int64) ([]domain.Campaign, error) {
	return r.queryCampaigns(ctx, `SELECT id, brand_id, name, is_active, created_at, updated_at
		FROM campaigns WHERE brand_id = $1 ORDER BY id`, brandID)
}

func (r *Repository) queryCampaigns(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.BrandID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

// SetCampaignActive writes the flag only when it differs, so the update
// is both atomic and idempotent. The returned bool reports whether a row
// actually changed.
func (r *Repository) SetCampaignActive(ctx context.Context, campaignID int64, active bool) (bool, error) {
	ct, err := r.pool.Exec(ctx, `UPDATE campaigns
		SET is_active = $2, updated_at = now()
		WHERE id = $1 AND is_active <> $2`, campaignID, active)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repository) DeactivateBrandCampaigns(ctx context.Context, brandID int64) (int64, error) {
	ct, err := r.pool.Exec(ctx, `UPDATE campaigns
		SET is_active = FALSE, updated_at = now()
		WHERE brand_id = $1 AND is_active`, brandID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *Repository) CreateSchedule(ctx context.Context, s *domain.Schedule) error {
	err := r.pool.QueryRow(ctx, `INSERT INTO schedules (campaign_id, day_of_week, start_hour, end_hour)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		s.CampaignID, s.DayOfWeek, s.StartHour, s.EndHour).
		Scan(&s.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return port.ErrDuplicateSchedule
	}
	return err
}

func (r *Repository) ListCampaignSchedules(ctx context.Context, campaignID int64) ([]domain.Schedule, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, campaign_id, day_of_week, start_hour, end_hour
		FROM schedules WHERE campaign_id = $1
		ORDER BY day_of_week, start_hour`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Schedule, error) {
		var s domain.Schedule
		err := row.Scan(&s.ID, &s.CampaignID, &s.DayOfWeek, &s.StartHour, &s.EndHour)
		return s, err
	})
}
