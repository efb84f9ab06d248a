package catalog

import (
	"context"
	"testing"

	"guarderia/internal/faults"
)

func seedIngredients(t *testing.T, service *Service, names ...string) []*Ingredient {
	t.Helper()
	out := make([]*Ingredient, 0, len(names))
	for _, name := range names {
		ing, err := service.CreateIngredient(context.Background(), name, "", false)
		if err != nil {
			t.Fatalf("seeding ingredient %q: %v", name, err)
		}
		out = append(out, ing)
	}
	return out
}

func TestCreateIngredientNameConflictIsCaseInsensitive(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	seedIngredients(t, service, "Milk")

	_, err := service.CreateIngredient(context.Background(), "milk", "", false)
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestIngredientByNameIsCaseInsensitive(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()
	seeded := seedIngredients(t, service, "Whole Milk")

	got, err := service.IngredientByName(ctx, "whole milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != seeded[0].ID {
		t.Fatalf("expected ingredient %d, got %d", seeded[0].ID, got.ID)
	}

	if _, err := service.IngredientByName(ctx, "almond milk"); !faults.Is(err, faults.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.IngredientByName(ctx, ""); !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure for empty name, got %v", err)
	}
}

func TestCreateDishRequiresIngredients(t *testing.T) {
	service := NewService(NewInMemoryRepository())

	_, err := service.CreateDish(context.Background(), "Lentil stew", "MAIN", nil)
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateDishRejectsDuplicateIngredient(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ings := seedIngredients(t, service, "Lentils")

	_, err := service.CreateDish(context.Background(), "Lentil stew", "MAIN", []DishIngredient{
		{IngredientID: ings[0].ID, Portion: "200g"},
		{IngredientID: ings[0].ID, Portion: "100g"},
	})
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRemoveLastIngredientRejectedAndDishUnchanged(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()
	ings := seedIngredients(t, service, "Rice")

	dish, err := service.CreateDish(ctx, "Plain rice", "SIDE", []DishIngredient{
		{IngredientID: ings[0].ID, Portion: "150g"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = service.RemoveIngredientFromDish(ctx, dish.ID, ings[0].ID)
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := service.GetDish(ctx, dish.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Ingredients) != 1 {
		t.Fatalf("dish composition changed, got %d ingredients", len(got.Ingredients))
	}
}

func TestRemoveIngredientFromLargerDish(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()
	ings := seedIngredients(t, service, "Rice", "Peas")

	dish, err := service.CreateDish(ctx, "Rice with peas", "SIDE", []DishIngredient{
		{IngredientID: ings[0].ID, Portion: "150g"},
		{IngredientID: ings[1].ID, Portion: "50g"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.RemoveIngredientFromDish(ctx, dish.ID, ings[1].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := service.GetDish(ctx, dish.ID)
	if len(got.Ingredients) != 1 || got.Ingredients[0].IngredientID != ings[0].ID {
		t.Fatalf("expected only rice to remain, got %+v", got.Ingredients)
	}
}

func TestDeleteIngredientBlockedWhileReferenced(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()
	ings := seedIngredients(t, service, "Egg")

	if _, err := service.CreateDish(ctx, "Omelette", "MAIN", []DishIngredient{
		{IngredientID: ings[0].ID, Portion: "2 units"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := service.DeleteIngredient(ctx, ings[0].ID)
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := service.GetIngredient(ctx, ings[0].ID); err != nil {
		t.Fatalf("ingredient should survive the blocked delete: %v", err)
	}
}

func TestMarkAllergenIsIdempotent(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()
	ings := seedIngredients(t, service, "Peanut")

	if err := service.MarkAllergen(ctx, ings[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.MarkAllergen(ctx, ings[0].ID); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}

	got, _ := service.GetIngredient(ctx, ings[0].ID)
	if !got.IsAllergen {
		t.Fatalf("expected ingredient to be flagged as allergen")
	}
}
