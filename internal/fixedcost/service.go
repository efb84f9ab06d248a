package fixedcost

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"guarderia/internal/clock"
	"guarderia/internal/faults"
)

// Service maintains the versioned fixed-cost schedule. Only one version
// is active at any wall-clock instant; callers must go through Activate
// and Deactivate, never mutate versions directly.
type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// Create adds an inactive version. Pre-dated historical entry is not
// supported: validFrom cannot be before today.
func (s *Service) Create(ctx context.Context, amount decimal.Decimal, validFrom time.Time, description string) (*Version, error) {
	if !amount.IsPositive() {
		return nil, faults.Invalidf("fixed-cost amount must be positive")
	}

	from := clock.DateOf(validFrom)
	if from.Before(clock.Today(s.clock)) {
		return nil, faults.Invalidf("valid_from cannot be in the past")
	}

	v := &Version{
		Amount:      amount,
		ValidFrom:   from,
		Active:      false,
		Description: description,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Activate opens version id from validFrom and auto-closes the
// previously active version at validFrom minus one day. Both writes
// happen in one transaction.
func (s *Service) Activate(ctx context.Context, id int, validFrom time.Time) (*Version, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Active {
		return nil, faults.Conflictf("fixed-cost version %d is already active", id)
	}

	from := clock.DateOf(validFrom)

	current, err := s.repo.ActiveVersion(ctx)
	if err != nil {
		return nil, err
	}

	var closeID *int
	closeTo := from.AddDate(0, 0, -1)
	if current != nil {
		if !from.After(current.ValidFrom) {
			return nil, faults.Invalidf("valid_from must be after the active version's start (%s)",
				current.ValidFrom.Format("2006-01-02"))
		}
		closeID = &current.ID
	}

	if err := s.repo.CloseAndActivate(ctx, closeID, closeTo, id, from); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Deactivate closes the version today without opening a successor.
func (s *Service) Deactivate(ctx context.Context, id int) (*Version, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Active {
		return nil, faults.Conflictf("fixed-cost version %d is not active", id)
	}

	today := clock.Today(s.clock)
	v.ValidTo = &today
	v.Active = false
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ActiveVersion(ctx context.Context) (*Version, error) {
	return s.repo.ActiveVersion(ctx)
}

func (s *Service) List(ctx context.Context) ([]*Version, error) {
	return s.repo.List(ctx)
}

// --------------------------------------------------
// core.RateReader
// --------------------------------------------------

// RateFor returns the amount of the version covering the day, or zero
// when none does. Zero is a value, not an error sentinel: billing
// produces a zero fixed cost for uncovered months.
func (s *Service) RateFor(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	v, err := s.repo.VersionCovering(ctx, clock.DateOf(date))
	if err != nil {
		return decimal.Zero, err
	}
	if v == nil {
		return decimal.Zero, nil
	}
	return v.Amount, nil
}

func (s *Service) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	return s.RateFor(ctx, clock.Today(s.clock))
}
