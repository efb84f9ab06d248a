package child

import (
	"context"
	"sort"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	payers    map[int]*Payer
	children  map[int]*Child
	nextPayer int
	nextChild int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		payers:    make(map[int]*Payer),
		children:  make(map[int]*Child),
		nextPayer: 1,
		nextChild: 1,
	}
}

func (r *InMemoryRepository) CreatePayer(_ context.Context, payer *Payer) error {
	for _, p := range r.payers {
		if p.Email == payer.Email {
			return faults.Conflictf("payer email already exists")
		}
	}
	payer.ID = r.nextPayer
	r.nextPayer++
	copied := *payer
	r.payers[payer.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetPayer(_ context.Context, id int) (*Payer, error) {
	p, ok := r.payers[id]
	if !ok {
		return nil, faults.NotFoundf("payer %d not found", id)
	}
	copied := *p
	return &copied, nil
}

func (r *InMemoryRepository) ListPayers(_ context.Context) ([]*Payer, error) {
	var out []*Payer
	for _, p := range r.payers {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) CreateChild(_ context.Context, child *Child) error {
	child.ID = r.nextChild
	r.nextChild++
	copied := *child
	r.children[child.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetChild(_ context.Context, id int) (*Child, error) {
	c, ok := r.children[id]
	if !ok {
		return nil, faults.NotFoundf("child %d not found", id)
	}
	copied := *c
	return &copied, nil
}

func (r *InMemoryRepository) UpdateChild(_ context.Context, child *Child) error {
	if _, ok := r.children[child.ID]; !ok {
		return faults.NotFoundf("child %d not found", child.ID)
	}
	copied := *child
	r.children[child.ID] = &copied
	return nil
}

func (r *InMemoryRepository) ListChildren(_ context.Context) ([]*Child, error) {
	var out []*Child
	for _, c := range r.children {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) CountActiveByPayer(_ context.Context, payerID, excludeChildID int) (int, error) {
	n := 0
	for _, c := range r.children {
		if c.Active && c.PayerID != nil && *c.PayerID == payerID && c.ID != excludeChildID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) ListActiveWithPayer(_ context.Context) ([]*Child, error) {
	var out []*Child
	for _, c := range r.children {
		if c.Active && c.PayerID != nil {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
