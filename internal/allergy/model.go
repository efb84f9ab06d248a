package allergy

import "time"

// Record states that a child must never receive an ingredient. One row
// per (child, ingredient) pair.
type Record struct {
	ID           int       `json:"id"`
	ChildID      int       `json:"child_id"`
	IngredientID int       `json:"ingredient_id"`
	CreatedAt    time.Time `json:"created_at"`
}
