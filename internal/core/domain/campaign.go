package domain

import "time"

// Campaign is a schedulable, budget-gated advertising unit belonging to
// one brand. IsActive is the only engine-controlled mutable field; every
// transition goes through the activation engine.
type Campaign struct {
	ID        int64
	BrandID   int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
