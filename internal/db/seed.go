package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Seed inserts demo data: a handful of brands with business-hours
// campaigns and a spread of spend over the current day and month.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		var brandID int64
		dailyBudget := decimal.NewFromInt(int64(100 * i))
		monthlyBudget := decimal.NewFromInt(int64(3000 * i))
		err := db.QueryRow(ctx, `INSERT INTO brands (name, daily_budget, monthly_budget)
			VALUES ($1, $2, $3) RETURNING id`,
			fmt.Sprintf("Brand %d", i), dailyBudget, monthlyBudget).Scan(&brandID)
		if err != nil {
			return err
		}

		for j := 1; j <= 3; j++ {
			var campaignID int64
			err = db.QueryRow(ctx, `INSERT INTO campaigns (brand_id, name, is_active)
				VALUES ($1, $2, TRUE) RETURNING id`,
				brandID, fmt.Sprintf("Brand %d campaign %d", i, j)).Scan(&campaignID)
			if err != nil {
				return err
			}

			// weekday business hours, staggered per campaign
			for day := 0; day < 5; day++ {
				start := 8 + j
				end := 16 + j
				_, err = db.Exec(ctx, `INSERT INTO schedules (campaign_id, day_of_week, start_hour, end_hour)
					VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
					campaignID, day, start, end)
				if err != nil {
					return err
				}
			}

			for k := 0; k < 20; k++ {
				amount := decimal.NewFromFloat(1 + r.Float64()*20).Round(2)
				recordedAt := now.Add(-time.Duration(r.Intn(20*24)) * time.Hour)
				_, err = db.Exec(ctx, `INSERT INTO spend_records (campaign_id, amount, recorded_at)
					VALUES ($1, $2, $3)`,
					campaignID, amount, recordedAt)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
