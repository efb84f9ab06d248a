package allergy

import (
	"context"

	"guarderia/internal/core"
)

// IngredientCatalog is the slice of the catalog the registry needs:
// existence checks and the allergen-flag cascade.
type IngredientCatalog interface {
	IngredientName(ctx context.Context, ingredientID int) (string, error)
	MarkAllergen(ctx context.Context, ingredientID int) error
}

type Service struct {
	repo     Repository
	children core.ChildReader
	catalog  IngredientCatalog
}

func NewService(repo Repository, children core.ChildReader, catalog IngredientCatalog) *Service {
	return &Service{repo: repo, children: children, catalog: catalog}
}

// Register records that the child must never receive the ingredient.
// A duplicate pair is a conflict. Registration also flips the
// ingredient's allergen flag if it was not marked yet: once any child
// reacts to it, the catalog should say so.
func (s *Service) Register(ctx context.Context, childID, ingredientID int) (*Record, error) {
	if _, err := s.children.GetChild(ctx, childID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.IngredientName(ctx, ingredientID); err != nil {
		return nil, err
	}

	rec := &Record{ChildID: childID, IngredientID: ingredientID}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.catalog.MarkAllergen(ctx, ingredientID); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Unregister(ctx context.Context, childID, ingredientID int) error {
	return s.repo.Delete(ctx, childID, ingredientID)
}

func (s *Service) ListForChild(ctx context.Context, childID int) ([]*Record, error) {
	if _, err := s.children.GetChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.repo.ListForChild(ctx, childID)
}
