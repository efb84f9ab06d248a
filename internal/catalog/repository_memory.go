package catalog

import (
	"context"
	"sort"
	"strings"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	ingredients map[int]*Ingredient
	dishes      map[int]*Dish
	nextIng     int
	nextDish    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		ingredients: make(map[int]*Ingredient),
		dishes:      make(map[int]*Dish),
		nextIng:     1,
		nextDish:    1,
	}
}

func (r *InMemoryRepository) CreateIngredient(_ context.Context, ing *Ingredient) error {
	for _, existing := range r.ingredients {
		if strings.EqualFold(existing.Name, ing.Name) {
			return faults.Conflictf("ingredient name %q already exists", ing.Name)
		}
	}
	ing.ID = r.nextIng
	r.nextIng++
	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetIngredient(_ context.Context, id int) (*Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, faults.NotFoundf("ingredient %d not found", id)
	}
	copied := *ing
	return &copied, nil
}

func (r *InMemoryRepository) GetIngredientByName(_ context.Context, name string) (*Ingredient, error) {
	for _, ing := range r.ingredients {
		if strings.EqualFold(ing.Name, name) {
			copied := *ing
			return &copied, nil
		}
	}
	return nil, faults.NotFoundf("ingredient %q not found", name)
}

func (r *InMemoryRepository) UpdateIngredient(_ context.Context, ing *Ingredient) error {
	if _, ok := r.ingredients[ing.ID]; !ok {
		return faults.NotFoundf("ingredient %d not found", ing.ID)
	}
	for _, existing := range r.ingredients {
		if existing.ID != ing.ID && strings.EqualFold(existing.Name, ing.Name) {
			return faults.Conflictf("ingredient name %q already exists", ing.Name)
		}
	}
	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) DeleteIngredient(_ context.Context, id int) error {
	if _, ok := r.ingredients[id]; !ok {
		return faults.NotFoundf("ingredient %d not found", id)
	}
	delete(r.ingredients, id)
	return nil
}

func (r *InMemoryRepository) ListIngredients(_ context.Context) ([]*Ingredient, error) {
	var out []*Ingredient
	for _, ing := range r.ingredients {
		copied := *ing
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *InMemoryRepository) IngredientInUse(_ context.Context, id int) (bool, error) {
	for _, dish := range r.dishes {
		for _, di := range dish.Ingredients {
			if di.IngredientID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *InMemoryRepository) CreateDish(_ context.Context, dish *Dish) error {
	for _, existing := range r.dishes {
		if strings.EqualFold(existing.Name, dish.Name) {
			return faults.Conflictf("dish name %q already exists", dish.Name)
		}
	}
	dish.ID = r.nextDish
	r.nextDish++
	copied := *dish
	copied.Ingredients = append([]DishIngredient(nil), dish.Ingredients...)
	r.dishes[dish.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetDish(_ context.Context, id int) (*Dish, error) {
	dish, ok := r.dishes[id]
	if !ok {
		return nil, faults.NotFoundf("dish %d not found", id)
	}
	copied := *dish
	copied.Ingredients = append([]DishIngredient(nil), dish.Ingredients...)
	return &copied, nil
}

func (r *InMemoryRepository) ListDishes(_ context.Context) ([]*Dish, error) {
	var out []*Dish
	for id := range r.dishes {
		dish, _ := r.GetDish(context.Background(), id)
		out = append(out, dish)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *InMemoryRepository) AddDishIngredient(_ context.Context, dishID, ingredientID int, portion string) error {
	dish, ok := r.dishes[dishID]
	if !ok {
		return faults.NotFoundf("dish %d not found", dishID)
	}
	for _, di := range dish.Ingredients {
		if di.IngredientID == ingredientID {
			return faults.Conflictf("dish %d already contains ingredient %d", dishID, ingredientID)
		}
	}
	dish.Ingredients = append(dish.Ingredients, DishIngredient{
		IngredientID: ingredientID,
		Portion:      portion,
	})
	return nil
}

func (r *InMemoryRepository) RemoveDishIngredient(_ context.Context, dishID, ingredientID int) error {
	dish, ok := r.dishes[dishID]
	if !ok {
		return faults.NotFoundf("dish %d not found", dishID)
	}
	for i, di := range dish.Ingredients {
		if di.IngredientID == ingredientID {
			dish.Ingredients = append(dish.Ingredients[:i], dish.Ingredients[i+1:]...)
			return nil
		}
	}
	return faults.NotFoundf("dish %d has no ingredient %d", dishID, ingredientID)
}
