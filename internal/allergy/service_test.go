package allergy

import (
	"context"
	"testing"
	"time"

	"guarderia/internal/catalog"
	"guarderia/internal/core"
	"guarderia/internal/faults"
)

type stubChildren struct {
	known map[int]bool
}

func (s stubChildren) GetChild(_ context.Context, childID int) (*core.ChildInfo, error) {
	if !s.known[childID] {
		return nil, faults.NotFoundf("child %d not found", childID)
	}
	return &core.ChildInfo{ID: childID, Active: true, EnrollmentDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (s stubChildren) CountActiveSiblings(context.Context, int, int) (int, error) { return 0, nil }

func (s stubChildren) ListActiveBillable(context.Context) ([]*core.ChildInfo, error) {
	return nil, nil
}

func TestRegisterMarksIngredientAsAllergen(t *testing.T) {
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	ctx := context.Background()

	ing, err := cat.CreateIngredient(ctx, "Peanut", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	service := NewService(NewInMemoryRepository(), stubChildren{known: map[int]bool{1: true}}, cat)

	if _, err := service.Register(ctx, 1, ing.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cat.GetIngredient(ctx, ing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAllergen {
		t.Fatalf("registration must flip the ingredient's allergen flag")
	}
}

func TestRegisterDuplicatePairConflicts(t *testing.T) {
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	ctx := context.Background()

	ing, err := cat.CreateIngredient(ctx, "Egg", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	service := NewService(NewInMemoryRepository(), stubChildren{known: map[int]bool{1: true}}, cat)

	if _, err := service.Register(ctx, 1, ing.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Register(ctx, 1, ing.ID); !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterUnknownChildFails(t *testing.T) {
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	service := NewService(NewInMemoryRepository(), stubChildren{}, cat)

	if _, err := service.Register(context.Background(), 99, 1); !faults.Is(err, faults.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnregisterMissingRecordFails(t *testing.T) {
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	service := NewService(NewInMemoryRepository(), stubChildren{known: map[int]bool{1: true}}, cat)

	if err := service.Unregister(context.Background(), 1, 1); !faults.Is(err, faults.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
