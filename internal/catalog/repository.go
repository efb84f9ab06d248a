package catalog

import "context"

// Repository defines all database operations for ingredients and dishes.
type Repository interface {
	CreateIngredient(ctx context.Context, ing *Ingredient) error
	GetIngredient(ctx context.Context, id int) (*Ingredient, error)
	GetIngredientByName(ctx context.Context, name string) (*Ingredient, error)
	UpdateIngredient(ctx context.Context, ing *Ingredient) error
	DeleteIngredient(ctx context.Context, id int) error
	ListIngredients(ctx context.Context) ([]*Ingredient, error)

	// IngredientInUse reports whether any dish references the ingredient.
	IngredientInUse(ctx context.Context, id int) (bool, error)

	CreateDish(ctx context.Context, dish *Dish) error
	GetDish(ctx context.Context, id int) (*Dish, error)
	ListDishes(ctx context.Context) ([]*Dish, error)
	AddDishIngredient(ctx context.Context, dishID, ingredientID int, portion string) error
	RemoveDishIngredient(ctx context.Context, dishID, ingredientID int) error
}
