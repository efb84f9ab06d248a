package consumption

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"guarderia/internal/clock"
	"guarderia/internal/core"
	"guarderia/internal/faults"
	"guarderia/internal/menu"
)

// SafetyChecker is the allergy validator as this package needs it.
type SafetyChecker interface {
	IsSafeMenu(ctx context.Context, childID, menuID int) (bool, error)
}

// Service records menu consumptions. This is the single enforcement
// point that keeps billed meal history allergy-consistent: billing
// trusts it and does not re-validate.
type Service struct {
	repo     Repository
	children core.ChildReader
	menus    *menu.Service
	checker  SafetyChecker
	clock    clock.Clock
}

func NewService(repo Repository, children core.ChildReader, menus *menu.Service, checker SafetyChecker, clk clock.Clock) *Service {
	return &Service{
		repo:     repo,
		children: children,
		menus:    menus,
		checker:  checker,
		clock:    clk,
	}
}

// Record persists one child's menu for one day, snapshotting the menu
// price as the billed cost. It rejects future dates, dates before
// enrollment, inactive menus, unsafe menus and duplicate days.
func (s *Service) Record(ctx context.Context, childID, menuID int, day time.Time, notes string) (*Consumption, error) {
	child, err := s.children.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	d := clock.DateOf(day)
	if d.After(clock.Today(s.clock)) {
		return nil, faults.Invalidf("consumption date cannot be in the future")
	}
	if d.Before(clock.DateOf(child.EnrollmentDate)) {
		return nil, faults.Invalidf("consumption date precedes enrollment of child %d", childID)
	}

	m, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, faults.Conflictf("menu %d is not active", menuID)
	}

	safe, err := s.checker.IsSafeMenu(ctx, childID, menuID)
	if err != nil {
		return nil, err
	}
	if !safe {
		return nil, faults.Conflictf("menu %d is not allergy-safe for child %d", menuID, childID)
	}

	con := &Consumption{
		ChildID:    childID,
		MenuID:     menuID,
		Day:        d,
		BilledCost: m.Price,
		Notes:      notes,
	}
	if err := s.repo.Create(ctx, con); err != nil {
		return nil, err
	}
	return con, nil
}

// Reassign swaps the recorded menu and re-snapshots the billed cost
// from the new menu's current price. The day and child stay fixed.
func (s *Service) Reassign(ctx context.Context, consumptionID, newMenuID int, notes string) (*Consumption, error) {
	con, err := s.repo.Get(ctx, consumptionID)
	if err != nil {
		return nil, err
	}

	m, err := s.menus.Get(ctx, newMenuID)
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, faults.Conflictf("menu %d is not active", newMenuID)
	}

	safe, err := s.checker.IsSafeMenu(ctx, con.ChildID, newMenuID)
	if err != nil {
		return nil, err
	}
	if !safe {
		return nil, faults.Conflictf("menu %d is not allergy-safe for child %d", newMenuID, con.ChildID)
	}

	con.MenuID = newMenuID
	con.BilledCost = m.Price
	con.Notes = notes
	if err := s.repo.Update(ctx, con); err != nil {
		return nil, err
	}
	return con, nil
}

func (s *Service) ListMonth(ctx context.Context, childID, month, year int) ([]*Consumption, error) {
	if month < 1 || month > 12 {
		return nil, faults.Invalidf("month must be 1-12")
	}
	if _, err := s.children.GetChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.repo.ListMonth(ctx, childID, month, year)
}

// --------------------------------------------------
// core.MealCostReader
// --------------------------------------------------
func (s *Service) MonthlyCost(ctx context.Context, childID, month, year int) (decimal.Decimal, error) {
	return s.repo.SumBilled(ctx, childID, month, year)
}
