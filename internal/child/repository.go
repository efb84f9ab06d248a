package child

import "context"

// Repository defines all database operations for children and payers.
type Repository interface {
	CreatePayer(ctx context.Context, payer *Payer) error
	GetPayer(ctx context.Context, id int) (*Payer, error)
	ListPayers(ctx context.Context) ([]*Payer, error)

	CreateChild(ctx context.Context, child *Child) error
	GetChild(ctx context.Context, id int) (*Child, error)
	UpdateChild(ctx context.Context, child *Child) error
	ListChildren(ctx context.Context) ([]*Child, error)

	// CountActiveByPayer counts active children of a payer, excluding one
	// child id (pass 0 to exclude nobody).
	CountActiveByPayer(ctx context.Context, payerID, excludeChildID int) (int, error)

	// ListActiveWithPayer returns active children with a payer assigned.
	ListActiveWithPayer(ctx context.Context) ([]*Child, error)
}
