package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
)

// Spend ledger queries. Aggregates always carry a timestamp bound so the
// scan stays within the current day or month window instead of walking
// the whole ledger; the (campaign_id, recorded_at) index backs both.

func (r *Repository) CreateSpendRecord(ctx context.Context, rec *domain.SpendRecord) error {
	return r.pool.QueryRow(ctx, `INSERT INTO spend_records (campaign_id, amount, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		rec.CampaignID, rec.Amount, rec.RecordedAt).
		Scan(&rec.ID)
}

func (r *Repository) BrandSpendBetween(ctx context.Context, brandID int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(sr.amount), 0)
		FROM spend_records sr
		JOIN campaigns c ON c.id = sr.campaign_id
		WHERE c.brand_id = $1 AND sr.recorded_at >= $2 AND sr.recorded_at < $3`,
		brandID, from, to).Scan(&total)
	return total, err
}

func (r *Repository) BrandSpendSince(ctx context.Context, brandID int64, from time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(sr.amount), 0)
		FROM spend_records sr
		JOIN campaigns c ON c.id = sr.campaign_id
		WHERE c.brand_id = $1 AND sr.recorded_at >= $2`,
		brandID, from).Scan(&total)
	return total, err
}
