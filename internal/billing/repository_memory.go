package billing

import (
	"context"
	"sort"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	charges map[int]*Charge
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		charges: make(map[int]*Charge),
		nextID:  1,
	}
}

func copyCharge(ch *Charge) *Charge {
	copied := *ch
	if ch.PaidAt != nil {
		paid := *ch.PaidAt
		copied.PaidAt = &paid
	}
	return &copied
}

func (r *InMemoryRepository) Create(_ context.Context, charge *Charge) error {
	for _, existing := range r.charges {
		if existing.ChildID == charge.ChildID && existing.Month == charge.Month && existing.Year == charge.Year {
			return faults.Conflictf("child %d is already billed for %d/%d", charge.ChildID, charge.Month, charge.Year)
		}
	}
	charge.ID = r.nextID
	r.nextID++
	r.charges[charge.ID] = copyCharge(charge)
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*Charge, error) {
	ch, ok := r.charges[id]
	if !ok {
		return nil, faults.NotFoundf("charge %d not found", id)
	}
	return copyCharge(ch), nil
}

func (r *InMemoryRepository) Update(_ context.Context, charge *Charge) error {
	if _, ok := r.charges[charge.ID]; !ok {
		return faults.NotFoundf("charge %d not found", charge.ID)
	}
	r.charges[charge.ID] = copyCharge(charge)
	return nil
}

func (r *InMemoryRepository) ListForChild(_ context.Context, childID int) ([]*Charge, error) {
	var out []*Charge
	for _, ch := range r.charges {
		if ch.ChildID == childID {
			out = append(out, copyCharge(ch))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}
