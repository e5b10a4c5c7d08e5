package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidBudget is returned when a brand carries a negative budget.
var ErrInvalidBudget = errors.New("budget must be non-negative")

// Brand is an advertiser owning a set of campaigns. Daily and monthly
// budgets are fixed configuration; the engine reads them but never
// mutates them.
type Brand struct {
	ID            int64
	Name          string
	DailyBudget   decimal.Decimal
	MonthlyBudget decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the budget configuration. Budgets must be non-negative;
// no ordering between daily and monthly budgets is enforced.
func (b Brand) Validate() error {
	if b.DailyBudget.IsNegative() || b.MonthlyBudget.IsNegative() {
		return ErrInvalidBudget
	}
	return nil
}
