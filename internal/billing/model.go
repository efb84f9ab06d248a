package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Charge is one month's computed bill for one child. Total is always
// fixed cost plus meal cost minus discounts at the moment of
// (re)generation; the discount amount itself is not persisted.
type Charge struct {
	ID          int             `json:"id"`
	ChildID     int             `json:"child_id"`
	PayerID     int             `json:"payer_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	FixedCost   decimal.Decimal `json:"fixed_cost"`
	MealCost    decimal.Decimal `json:"meal_cost"`
	Total       decimal.Decimal `json:"total"`
	GeneratedAt time.Time       `json:"generated_at"`
	PaidAt      *time.Time      `json:"paid_at"`
	Status      string          `json:"status"`
}
