package menu

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"guarderia/internal/catalog"
	"guarderia/internal/faults"
)

func newTestService(t *testing.T) (*Service, *catalog.Service) {
	t.Helper()
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	return NewService(NewInMemoryRepository(), cat, nil), cat
}

func seedDish(t *testing.T, cat *catalog.Service, name string, ingredientNames ...string) *catalog.Dish {
	t.Helper()
	ctx := context.Background()
	var composition []catalog.DishIngredient
	for _, ingName := range ingredientNames {
		ing, err := cat.CreateIngredient(ctx, ingName, "", false)
		if err != nil {
			t.Fatalf("seeding ingredient %q: %v", ingName, err)
		}
		composition = append(composition, catalog.DishIngredient{IngredientID: ing.ID, Portion: "1"})
	}
	dish, err := cat.CreateDish(ctx, name, "MAIN", composition)
	if err != nil {
		t.Fatalf("seeding dish %q: %v", name, err)
	}
	return dish
}

func TestCreateAssignsPositionsAndMain(t *testing.T) {
	service, cat := newTestService(t)
	ctx := context.Background()

	d1 := seedDish(t, cat, "Stew", "Lentils")
	d2 := seedDish(t, cat, "Salad", "Lettuce")

	m, err := service.Create(ctx, "Monday", "", decimal.NewFromInt(5), []int{d1.ID, d2.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(m.Dishes))
	}
	if !m.Dishes[0].IsMain || m.Dishes[0].Position != 1 {
		t.Fatalf("first dish should be main at position 1, got %+v", m.Dishes[0])
	}
	if m.Dishes[1].IsMain || m.Dishes[1].Position != 2 {
		t.Fatalf("second dish should be secondary at position 2, got %+v", m.Dishes[1])
	}
}

func TestCreateRejectsDuplicateDish(t *testing.T) {
	service, cat := newTestService(t)
	d := seedDish(t, cat, "Stew", "Lentils")

	_, err := service.Create(context.Background(), "Monday", "", decimal.NewFromInt(5), []int{d.ID, d.ID})
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	service, cat := newTestService(t)
	d := seedDish(t, cat, "Stew", "Lentils")

	_, err := service.Create(context.Background(), "Monday", "", decimal.NewFromInt(-1), []int{d.ID})
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRemoveLastDishRejected(t *testing.T) {
	service, cat := newTestService(t)
	ctx := context.Background()
	d := seedDish(t, cat, "Stew", "Lentils")

	m, err := service.Create(ctx, "Monday", "", decimal.NewFromInt(5), []int{d.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.RemoveDish(ctx, m.ID, d.ID)
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRemoveDishResequencesAndPromotesMain(t *testing.T) {
	service, cat := newTestService(t)
	ctx := context.Background()

	d1 := seedDish(t, cat, "Stew", "Lentils")
	d2 := seedDish(t, cat, "Salad", "Lettuce")
	d3 := seedDish(t, cat, "Fruit", "Apple")

	m, err := service.Create(ctx, "Monday", "", decimal.NewFromInt(5), []int{d1.ID, d2.ID, d3.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err = service.RemoveDish(ctx, m.ID, d1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(m.Dishes))
	}
	if m.Dishes[0].DishID != d2.ID || !m.Dishes[0].IsMain || m.Dishes[0].Position != 1 {
		t.Fatalf("expected salad promoted to main at position 1, got %+v", m.Dishes[0])
	}
	if m.Dishes[1].Position != 2 {
		t.Fatalf("expected fruit re-sequenced to position 2, got %+v", m.Dishes[1])
	}
}

func TestIngredientIDsForMenuUnionsAcrossDishes(t *testing.T) {
	service, cat := newTestService(t)
	ctx := context.Background()

	rice, err := cat.CreateIngredient(ctx, "Rice", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	egg, err := cat.CreateIngredient(ctx, "Egg", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1, err := cat.CreateDish(ctx, "Fried rice", "MAIN", []catalog.DishIngredient{
		{IngredientID: rice.ID, Portion: "150g"},
		{IngredientID: egg.ID, Portion: "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := cat.CreateDish(ctx, "Tortilla", "SIDE", []catalog.DishIngredient{
		{IngredientID: egg.ID, Portion: "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := service.Create(ctx, "Monday", "", decimal.NewFromInt(5), []int{d1.ID, d2.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err := service.IngredientIDsForMenu(ctx, m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected deduped union of 2 ingredients, got %v", ids)
	}
}

type stubChecker struct {
	unsafeMenus map[int]bool
}

func (s stubChecker) IsSafeMenu(_ context.Context, _ int, menuID int) (bool, error) {
	return !s.unsafeMenus[menuID], nil
}

func TestListSafeForChildFiltersUnsafeMenus(t *testing.T) {
	service, cat := newTestService(t)
	ctx := context.Background()

	d1 := seedDish(t, cat, "Stew", "Lentils")
	d2 := seedDish(t, cat, "Omelette", "Egg")

	safeMenu, err := service.Create(ctx, "Monday", "", decimal.NewFromInt(5), []int{d1.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unsafeMenu, err := service.Create(ctx, "Tuesday", "", decimal.NewFromInt(5), []int{d2.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := service.ListSafeForChild(ctx, stubChecker{unsafeMenus: map[int]bool{unsafeMenu.ID: true}}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != safeMenu.ID {
		t.Fatalf("expected only the safe menu, got %d menus", len(got))
	}
}
