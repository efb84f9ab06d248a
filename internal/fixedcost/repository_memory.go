package fixedcost

import (
	"context"
	"sort"
	"time"

	"guarderia/internal/faults"
)

type InMemoryRepository struct {
	versions map[int]*Version
	nextID   int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		versions: make(map[int]*Version),
		nextID:   1,
	}
}

func copyVersion(v *Version) *Version {
	copied := *v
	if v.ValidTo != nil {
		to := *v.ValidTo
		copied.ValidTo = &to
	}
	return &copied
}

func (r *InMemoryRepository) Create(_ context.Context, v *Version) error {
	v.ID = r.nextID
	r.nextID++
	r.versions[v.ID] = copyVersion(v)
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int) (*Version, error) {
	v, ok := r.versions[id]
	if !ok {
		return nil, faults.NotFoundf("fixed-cost version %d not found", id)
	}
	return copyVersion(v), nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Version, error) {
	var out []*Version
	for _, v := range r.versions {
		out = append(out, copyVersion(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidFrom.Before(out[j].ValidFrom) })
	return out, nil
}

func (r *InMemoryRepository) ActiveVersion(_ context.Context) (*Version, error) {
	for _, v := range r.versions {
		if v.Active {
			return copyVersion(v), nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) VersionCovering(_ context.Context, day time.Time) (*Version, error) {
	var best *Version
	for _, v := range r.versions {
		if !v.Covers(day) {
			continue
		}
		if best == nil || v.ValidFrom.After(best.ValidFrom) {
			best = v
		}
	}
	if best == nil {
		return nil, nil
	}
	return copyVersion(best), nil
}

func (r *InMemoryRepository) Update(_ context.Context, v *Version) error {
	if _, ok := r.versions[v.ID]; !ok {
		return faults.NotFoundf("fixed-cost version %d not found", v.ID)
	}
	r.versions[v.ID] = copyVersion(v)
	return nil
}

func (r *InMemoryRepository) CloseAndActivate(_ context.Context, closeID *int, closeTo time.Time, openID int, openFrom time.Time) error {
	open, ok := r.versions[openID]
	if !ok {
		return faults.NotFoundf("fixed-cost version %d not found", openID)
	}

	if closeID != nil {
		closing, ok := r.versions[*closeID]
		if !ok {
			return faults.NotFoundf("fixed-cost version %d not found", *closeID)
		}
		to := closeTo
		closing.ValidTo = &to
		closing.Active = false
	}

	open.ValidFrom = openFrom
	open.ValidTo = nil
	open.Active = true
	return nil
}
