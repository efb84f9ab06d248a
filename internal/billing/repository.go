package billing

import "context"

// Repository defines all database operations for monthly charges.
// Create must be atomic with the (child, month, year) uniqueness check:
// the unique constraint is the only guard against double billing under
// concurrent generation.
type Repository interface {
	Create(ctx context.Context, charge *Charge) error
	Get(ctx context.Context, id int) (*Charge, error)
	Update(ctx context.Context, charge *Charge) error
	ListForChild(ctx context.Context, childID int) ([]*Charge, error)
}
