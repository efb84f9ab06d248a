package catalog

// Ingredient is the leaf of the composition chain. IsAllergen marks
// ingredients known to be allergenic; the allergy registry flips it when
// a child is registered against an unmarked ingredient.
type Ingredient struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsAllergen  bool   `json:"is_allergen"`
}

// Dish is a named set of ingredient references. A dish keeps at least
// one ingredient at all times.
type Dish struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Ingredients []DishIngredient `json:"ingredients"`
}

type DishIngredient struct {
	IngredientID int    `json:"ingredient_id"`
	Portion      string `json:"portion"`
}
