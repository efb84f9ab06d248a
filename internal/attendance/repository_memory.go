package attendance

import (
	"context"
	"sort"
	"time"

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
		if existing.ChildID == rec.ChildID && existing.Day.Equal(rec.Day) {
			return faults.Conflictf("attendance already recorded for child %d on %s",
				rec.ChildID, rec.Day.Format("2006-01-02"))
		}
	}
	rec.ID = r.nextID
	r.nextID++
	copied := *rec
	r.records[rec.ID] = &copied
	return nil
}

func (r *InMemoryRepository) ListMonth(_ context.Context, childID, month, year int) ([]*Record, error) {
	var out []*Record
	for _, rec := range r.records {
		if rec.ChildID == childID && int(rec.Day.Month()) == month && rec.Day.Year() == year {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *InMemoryRepository) CountAttended(_ context.Context, childID, month, year int) (int, error) {
	n := 0
	for _, rec := range r.records {
		if rec.ChildID == childID && rec.Attended && int(rec.Day.Month()) == month && rec.Day.Year() == year {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) Exists(_ context.Context, childID int, day time.Time) (bool, error) {
	for _, rec := range r.records {
		if rec.ChildID == childID && rec.Day.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}
