package attendance

import (
	"context"
	"time"

	"guarderia/internal/clock"
	"guarderia/internal/core"
	"guarderia/internal/faults"
)

type Service struct {
	repo     Repository
	children core.ChildReader
	clock    clock.Clock
}

func NewService(repo Repository, children core.ChildReader, clk clock.Clock) *Service {
	return &Service{repo: repo, children: children, clock: clk}
}

// Record writes one child's presence for one day. The day cannot be in
// the future or before the child's enrollment.
func (s *Service) Record(ctx context.Context, childID int, day time.Time, attended bool) (*Record, error) {
	child, err := s.children.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	d := clock.DateOf(day)
	today := clock.Today(s.clock)

	if d.After(today) {
		return nil, faults.Invalidf("attendance date cannot be in the future")
	}
	if d.Before(clock.DateOf(child.EnrollmentDate)) {
		return nil, faults.Invalidf("attendance date precedes enrollment of child %d", childID)
	}

	rec := &Record{ChildID: childID, Day: d, Attended: attended}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListMonth(ctx context.Context, childID, month, year int) ([]*Record, error) {
	if month < 1 || month > 12 {
		return nil, faults.Invalidf("month must be 1-12")
	}
	if _, err := s.children.GetChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.repo.ListMonth(ctx, childID, month, year)
}

// DaysAttended counts attended days in a month.
func (s *Service) DaysAttended(ctx context.Context, childID, month, year int) (int, error) {
	if month < 1 || month > 12 {
		return 0, faults.Invalidf("month must be 1-12")
	}
	return s.repo.CountAttended(ctx, childID, month, year)
}
