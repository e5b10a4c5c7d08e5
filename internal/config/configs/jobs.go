package configs

import "time"

// Jobs configures the background job runner. The budget check runs on a
// plain interval; the dayparting check, daily reset and monthly reset
// are aligned to hour, day and month boundaries and are not configurable.
type Jobs struct {
	// Enabled controls whether the background runner starts at all.
	// Disable it when an external scheduler triggers the jobs over HTTP.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// BudgetCheckInterval is the cadence of the brand-wide budget check.
	BudgetCheckInterval time.Duration `env:"BUDGET_CHECK_INTERVAL" envDefault:"5m"`
}
