package catalog

import (
	"context"

	"guarderia/internal/faults"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Ingredients
// --------------------------------------------------
func (s *Service) CreateIngredient(ctx context.Context, name, description string, isAllergen bool) (*Ingredient, error) {
	if name == "" {
		return nil, faults.Invalidf("ingredient name is required")
	}

	ing := &Ingredient{Name: name, Description: description, IsAllergen: isAllergen}
	if err := s.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) GetIngredient(ctx context.Context, id int) (*Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *Service) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

// IngredientByName looks an ingredient up by its case-insensitive name.
func (s *Service) IngredientByName(ctx context.Context, name string) (*Ingredient, error) {
	if name == "" {
		return nil, faults.Invalidf("ingredient name is required")
	}
	return s.repo.GetIngredientByName(ctx, name)
}

func (s *Service) UpdateIngredient(ctx context.Context, id int, name, description string, isAllergen bool) (*Ingredient, error) {
	if name == "" {
		return nil, faults.Invalidf("ingredient name is required")
	}

	ing, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	ing.Name = name
	ing.Description = description
	ing.IsAllergen = isAllergen
	if err := s.repo.UpdateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// MarkAllergen flips the allergen flag on. Called by the allergy
// registry when a child is registered against an unmarked ingredient.
func (s *Service) MarkAllergen(ctx context.Context, id int) error {
	ing, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return err
	}
	if ing.IsAllergen {
		return nil
	}
	ing.IsAllergen = true
	return s.repo.UpdateIngredient(ctx, ing)
}

// DeleteIngredient refuses while any dish still references the ingredient.
func (s *Service) DeleteIngredient(ctx context.Context, id int) error {
	if _, err := s.repo.GetIngredient(ctx, id); err != nil {
		return err
	}

	inUse, err := s.repo.IngredientInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return faults.Conflictf("ingredient %d is referenced by a dish", id)
	}

	return s.repo.DeleteIngredient(ctx, id)
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------
func (s *Service) CreateDish(ctx context.Context, name, dishType string, ingredients []DishIngredient) (*Dish, error) {
	if name == "" {
		return nil, faults.Invalidf("dish name is required")
	}
	if len(ingredients) == 0 {
		return nil, faults.Invalidf("a dish needs at least one ingredient")
	}

	seen := make(map[int]bool, len(ingredients))
	for _, di := range ingredients {
		if seen[di.IngredientID] {
			return nil, faults.Invalidf("duplicate ingredient %d in dish", di.IngredientID)
		}
		seen[di.IngredientID] = true
		if _, err := s.repo.GetIngredient(ctx, di.IngredientID); err != nil {
			return nil, err
		}
	}

	dish := &Dish{Name: name, Type: dishType, Ingredients: ingredients}
	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *Service) GetDish(ctx context.Context, id int) (*Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *Service) ListDishes(ctx context.Context) ([]*Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *Service) AddIngredientToDish(ctx context.Context, dishID, ingredientID int, portion string) error {
	if _, err := s.repo.GetDish(ctx, dishID); err != nil {
		return err
	}
	if _, err := s.repo.GetIngredient(ctx, ingredientID); err != nil {
		return err
	}
	return s.repo.AddDishIngredient(ctx, dishID, ingredientID, portion)
}

// RemoveIngredientFromDish rejects removing the last ingredient; a dish
// never goes empty.
func (s *Service) RemoveIngredientFromDish(ctx context.Context, dishID, ingredientID int) error {
	dish, err := s.repo.GetDish(ctx, dishID)
	if err != nil {
		return err
	}
	if len(dish.Ingredients) <= 1 {
		return faults.Conflictf("cannot remove the last ingredient of dish %d", dishID)
	}
	return s.repo.RemoveDishIngredient(ctx, dishID, ingredientID)
}

// --------------------------------------------------
// Composition lookups (allergy cascade)
// --------------------------------------------------

// IngredientIDsForDish resolves the dish to its ingredient id set.
func (s *Service) IngredientIDsForDish(ctx context.Context, dishID int) ([]int, error) {
	dish, err := s.repo.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(dish.Ingredients))
	for _, di := range dish.Ingredients {
		ids = append(ids, di.IngredientID)
	}
	return ids, nil
}

// IngredientName resolves an id to its display name.
func (s *Service) IngredientName(ctx context.Context, ingredientID int) (string, error) {
	ing, err := s.repo.GetIngredient(ctx, ingredientID)
	if err != nil {
		return "", err
	}
	return ing.Name, nil
}
