package allergy

import (
	"context"
	"sort"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	records map[int]*Record
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[int]*Record),
		nextID:  1,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, rec *Record) error {
	for _, existing := range r.records {
		if existing.ChildID == rec.ChildID && existing.IngredientID == rec.IngredientID {
			return faults.Conflictf("child %d is already registered for ingredient %d", rec.ChildID, rec.IngredientID)
		}
	}
	rec.ID = r.nextID
	r.nextID++
	copied := *rec
	r.records[rec.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, childID, ingredientID int) error {
	for id, rec := range r.records {
		if rec.ChildID == childID && rec.IngredientID == ingredientID {
			delete(r.records, id)
			return nil
		}
	}
	return faults.NotFoundf("no allergy record for child %d and ingredient %d", childID, ingredientID)
}

func (r *InMemoryRepository) ListForChild(_ context.Context, childID int) ([]*Record, error) {
	var out []*Record
	for _, rec := range r.records {
		if rec.ChildID == childID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) IngredientIDsForChild(_ context.Context, childID int) ([]int, error) {
	var ids []int
	for _, rec := range r.records {
		if rec.ChildID == childID {
			ids = append(ids, rec.IngredientID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
