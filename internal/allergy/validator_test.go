package allergy

import (
	"context"
	"errors"
	"testing"
)

type stubResolver struct {
	dishIngredients map[int][]int
	menuIngredients map[int][]int
	names           map[int]string
	err             error
}

func (s stubResolver) IngredientIDsForDish(_ context.Context, dishID int) ([]int, error) {
	return s.dishIngredients[dishID], s.err
}

func (s stubResolver) IngredientIDsForMenu(_ context.Context, menuID int) ([]int, error) {
	return s.menuIngredients[menuID], s.err
}

func (s stubResolver) IngredientName(_ context.Context, id int) (string, error) {
	return s.names[id], s.err
}

func registerRecord(t *testing.T, repo *InMemoryRepository, childID, ingredientID int) {
	t.Helper()
	if err := repo.Create(context.Background(), &Record{ChildID: childID, IngredientID: ingredientID}); err != nil {
		t.Fatalf("seeding allergy record: %v", err)
	}
}

func TestEmptyRegistryIsAlwaysSafe(t *testing.T) {
	repo := NewInMemoryRepository()
	resolver := stubResolver{menuIngredients: map[int][]int{7: {1, 2, 3}}}
	v := NewValidator(repo, resolver, resolver, resolver)

	safe, err := v.IsSafeMenu(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !safe {
		t.Fatalf("child without allergy records must always be safe")
	}
}

func TestUnsafeMenuDetectedAcrossAnyDish(t *testing.T) {
	repo := NewInMemoryRepository()
	registerRecord(t, repo, 1, 2)

	// ingredient 2 only appears in the menu union, proving the check
	// is not limited to a single dish
	resolver := stubResolver{
		menuIngredients: map[int][]int{7: {1, 2, 3}},
		dishIngredients: map[int][]int{4: {1}},
	}
	v := NewValidator(repo, resolver, resolver, resolver)

	safe, err := v.IsSafeMenu(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if safe {
		t.Fatalf("menu containing a registered ingredient must be unsafe")
	}

	safeDish, err := v.IsSafeDish(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !safeDish {
		t.Fatalf("dish without registered ingredients must be safe")
	}
}

func TestResolverFailureFailsOpen(t *testing.T) {
	repo := NewInMemoryRepository()
	registerRecord(t, repo, 1, 2)

	resolver := stubResolver{err: errors.New("catalog down")}
	v := NewValidator(repo, resolver, resolver, resolver)

	safe, err := v.IsSafeMenu(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !safe {
		t.Fatalf("resolver failure must not block operation")
	}
}

func TestNilResolversDegradeToSafe(t *testing.T) {
	repo := NewInMemoryRepository()
	registerRecord(t, repo, 1, 2)

	v := NewValidator(repo, nil, nil, nil)

	safe, err := v.IsSafeMenu(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !safe {
		t.Fatalf("validator without a catalog must answer safe")
	}
}

func TestUnsafeIngredientsAreNamedSortedAndDeduped(t *testing.T) {
	repo := NewInMemoryRepository()
	registerRecord(t, repo, 1, 2)
	registerRecord(t, repo, 1, 5)

	resolver := stubResolver{
		menuIngredients: map[int][]int{7: {2, 5, 9}},
		names:           map[int]string{2: "Peanut", 5: "Egg", 9: "Rice"},
	}
	v := NewValidator(repo, resolver, resolver, resolver)

	names, err := v.UnsafeIngredientsForMenu(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Egg" || names[1] != "Peanut" {
		t.Fatalf("expected [Egg Peanut], got %v", names)
	}
}

func TestIsSafeIngredientsHonorsRegistry(t *testing.T) {
	repo := NewInMemoryRepository()
	registerRecord(t, repo, 1, 3)
	v := NewValidator(repo, nil, nil, nil)

	safe, err := v.IsSafeIngredients(context.Background(), 1, []int{1, 2})
	if err != nil || !safe {
		t.Fatalf("expected safe list, got safe=%v err=%v", safe, err)
	}

	safe, err = v.IsSafeIngredients(context.Background(), 1, []int{1, 3})
	if err != nil || safe {
		t.Fatalf("expected unsafe list, got safe=%v err=%v", safe, err)
	}
}
