package consumption

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	consumptions map[int]*Consumption
	nextID       int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		consumptions: make(map[int]*Consumption),
		nextID:       1,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, con *Consumption) error {
	for _, existing := range r.consumptions {
		if existing.ChildID == con.ChildID && existing.Day.Equal(con.Day) {
			return faults.Conflictf("consumption already recorded for child %d on %s",
				con.ChildID, con.Day.Format("2006-01-02"))
		}
	}
	con.ID = r.nextID
	r.nextID++
	copied := *con
	r.consumptions[con.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*Consumption, error) {
	con, ok := r.consumptions[id]
	if !ok {
		return nil, faults.NotFoundf("consumption %d not found", id)
	}
	copied := *con
	return &copied, nil
}

func (r *InMemoryRepository) Update(_ context.Context, con *Consumption) error {
	if _, ok := r.consumptions[con.ID]; !ok {
		return faults.NotFoundf("consumption %d not found", con.ID)
	}
	copied := *con
	r.consumptions[con.ID] = &copied
	return nil
}

func (r *InMemoryRepository) ListMonth(_ context.Context, childID, month, year int) ([]*Consumption, error) {
	var out []*Consumption
	for _, con := range r.consumptions {
		if con.ChildID == childID && int(con.Day.Month()) == month && con.Day.Year() == year {
			copied := *con
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *InMemoryRepository) SumBilled(_ context.Context, childID, month, year int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, con := range r.consumptions {
		if con.ChildID == childID && int(con.Day.Month()) == month && con.Day.Year() == year {
			sum = sum.Add(con.BilledCost)
		}
	}
	return sum, nil
}
