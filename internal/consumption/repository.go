package consumption

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines all database operations for menu consumptions.
type Repository interface {
	// Create persists a consumption; a second row for the same
	// (child, day) is a conflict.
	Create(ctx context.Context, con *Consumption) error

	Get(ctx context.Context, id int) (*Consumption, error)
	Update(ctx context.Context, con *Consumption) error
	ListMonth(ctx context.Context, childID, month, year int) ([]*Consumption, error)
	SumBilled(ctx context.Context, childID, month, year int) (decimal.Decimal, error)
}
