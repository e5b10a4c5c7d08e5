package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a spend amount is zero or negative.
// The ledger is append-only and rows are never repaired, so bad amounts
// are rejected up front.
var ErrInvalidAmount = errors.New("spend amount must be positive")

// SpendRecord is one entry in the append-only spend ledger. Records are
// immutable once created; aggregate spend is always derived from the
// ledger, never stored as a running counter.
type SpendRecord struct {
	ID         int64
	CampaignID int64
	Amount     decimal.Decimal
	RecordedAt time.Time
}

// Validate checks that the amount is strictly positive.
func (r SpendRecord) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
