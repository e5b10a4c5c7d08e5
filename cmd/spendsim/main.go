package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"ad-agency/internal/adapter/postgres"
	"ad-agency/internal/adapter/usecase"
	"ad-agency/internal/config"
	"ad-agency/internal/core/domain"
	"ad-agency/internal/db"
	"ad-agency/internal/metrics"
)

// spendsim simulates ad spend for all active campaigns. Each active
// campaign currently inside its dayparting schedule receives one random
// spend record between -min and -max; campaigns outside their schedule
// are skipped. Spend goes through the engine, so the post-spend
// reactivation hook runs exactly as it would for a real billing event.
func main() {
	minAmount := flag.Float64("min", 1.0, "minimum spend amount")
	maxAmount := flag.Float64("max", 100.0, "maximum spend amount")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewRepository(pool)
	engine := usecase.NewService(repo, loc, logger, metrics.New(prometheus.NewRegistry()))

	campaigns, err := repo.ListCampaigns(ctx)
	if err != nil {
		logger.Error("list campaigns error", slog.Any("error", err))
		os.Exit(1)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := engine.Now()
	for _, c := range campaigns {
		if !c.IsActive {
			continue
		}
		schedules, err := repo.ListCampaignSchedules(ctx, c.ID)
		if err != nil {
			logger.Error("list schedules error",
				slog.Int64("campaign_id", c.ID), slog.Any("error", err))
			continue
		}
		if !domain.WithinAnySchedule(schedules, now) {
			logger.Warn("campaign outside dayparting schedule, no spend recorded",
				slog.String("campaign", c.Name))
			continue
		}
		amount := decimal.NewFromFloat(*minAmount + r.Float64()*(*maxAmount-*minAmount)).Round(2)
		if _, err := engine.RecordSpend(ctx, c.ID, amount, time.Time{}); err != nil {
			logger.Error("record spend error",
				slog.String("campaign", c.Name), slog.Any("error", err))
			continue
		}
		logger.Info("spend recorded",
			slog.String("campaign", c.Name), slog.String("amount", amount.String()))
	}
	logger.Info("finished recording spend")
}
