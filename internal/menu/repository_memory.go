package menu

import (
	"context"
	"sort"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	menus  map[int]*Menu
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		menus:  make(map[int]*Menu),
		nextID: 1,
	}
}

func copyMenu(m *Menu) *Menu {
	copied := *m
	copied.Dishes = append([]MenuDish(nil), m.Dishes...)
	return &copied
}

func (r *InMemoryRepository) Create(_ context.Context, menu *Menu) error {
	menu.ID = r.nextID
	r.nextID++
	r.menus[menu.ID] = copyMenu(menu)
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, faults.NotFoundf("menu %d not found", id)
	}
	return copyMenu(m), nil
}

func (r *InMemoryRepository) List(_ context.Context, onlyActive bool) ([]*Menu, error) {
	var out []*Menu
	for _, m := range r.menus {
		if onlyActive && !m.Active {
			continue
		}
		out = append(out, copyMenu(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Update(_ context.Context, menu *Menu) error {
	if _, ok := r.menus[menu.ID]; !ok {
		return faults.NotFoundf("menu %d not found", menu.ID)
	}
	r.menus[menu.ID] = copyMenu(menu)
	return nil
}

func (r *InMemoryRepository) ReplaceDishes(_ context.Context, menuID int, dishes []MenuDish) error {
	m, ok := r.menus[menuID]
	if !ok {
		return faults.NotFoundf("menu %d not found", menuID)
	}
	m.Dishes = append([]MenuDish(nil), dishes...)
	return nil
}
