package allergy

import "context"

// Repository defines all database operations for allergy records.
type Repository interface {
	// Create persists a record; a duplicate (child, ingredient) pair is a
	// conflict, not a silent no-op.
	Create(ctx context.Context, rec *Record) error

	Delete(ctx context.Context, childID, ingredientID int) error
	ListForChild(ctx context.Context, childID int) ([]*Record, error)
	IngredientIDsForChild(ctx context.Context, childID int) ([]int, error)
}
