package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guarderia/internal/clock"
	"guarderia/internal/core"
	"guarderia/internal/faults"
)

// Service generates monthly charges: fixed cost for the billed month,
// plus the month's recorded meal costs, minus the stacked discounts.
type Service struct {
	repo      Repository
	children  core.ChildReader
	rates     core.RateReader
	meals     core.MealCostReader
	discounts *DiscountEngine
	clock     clock.Clock
}

func NewService(
	repo Repository,
	children core.ChildReader,
	rates core.RateReader,
	meals core.MealCostReader,
	discounts *DiscountEngine,
	clk clock.Clock,
) *Service {
	return &Service{
		repo:      repo,
		children:  children,
		rates:     rates,
		meals:     meals,
		discounts: discounts,
		clock:     clk,
	}
}

func validPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return faults.Invalidf("month must be 1-12")
	}
	if year < 2000 {
		return faults.Invalidf("year %d is out of range", year)
	}
	return nil
}

// Generate computes and persists the charge for (child, month, year).
// A second call for the same key is a conflict; the unique constraint
// behind Repository.Create keeps that check atomic with the insert.
func (s *Service) Generate(ctx context.Context, childID, month, year int) (*Charge, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}

	child, err := s.children.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.PayerID == nil {
		return nil, faults.Invalidf("child %d has no payer assigned", childID)
	}

	charge, err := s.compute(ctx, child, month, year)
	if err != nil {
		return nil, err
	}
	charge.GeneratedAt = s.clock.Now()
	charge.Status = StatusPending

	if err := s.repo.Create(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *Service) compute(ctx context.Context, child *core.ChildInfo, month, year int) (*Charge, error) {
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	fixed, err := s.rates.RateFor(ctx, firstDay)
	if err != nil {
		return nil, err
	}

	meal, err := s.meals.MonthlyCost(ctx, child.ID, month, year)
	if err != nil {
		return nil, err
	}

	discounts := s.discounts.ComputeDiscounts(ctx, child.ID, month, year)

	return &Charge{
		ChildID:   child.ID,
		PayerID:   *child.PayerID,
		Month:     month,
		Year:      year,
		FixedCost: fixed.Round(2),
		MealCost:  meal.Round(2),
		Total:     fixed.Add(meal).Sub(discounts).Round(2),
	}, nil
}

// Recalculate re-derives fixed cost, meal cost and discounts for an
// existing charge's stored period and overwrites the totals. Status and
// payment date are untouched; the freshly recomputed discounts silently
// redefine the total.
func (s *Service) Recalculate(ctx context.Context, chargeID int) (*Charge, error) {
	charge, err := s.repo.Get(ctx, chargeID)
	if err != nil {
		return nil, err
	}

	child, err := s.children.GetChild(ctx, charge.ChildID)
	if err != nil {
		return nil, err
	}
	if child.PayerID == nil {
		return nil, faults.Invalidf("child %d has no payer assigned", child.ID)
	}

	fresh, err := s.compute(ctx, child, charge.Month, charge.Year)
	if err != nil {
		return nil, err
	}

	charge.FixedCost = fresh.FixedCost
	charge.MealCost = fresh.MealCost
	charge.Total = fresh.Total
	if err := s.repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

// MarkPaid stamps the charge paid. Paying twice is a conflict; a paid
// date before the generation date is invalid.
func (s *Service) MarkPaid(ctx context.Context, chargeID int, paidDate time.Time) (*Charge, error) {
	charge, err := s.repo.Get(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if charge.Status == StatusPaid {
		return nil, faults.Conflictf("charge %d is already paid", chargeID)
	}

	paid := clock.DateOf(paidDate)
	if paid.Before(clock.DateOf(charge.GeneratedAt)) {
		return nil, faults.Invalidf("paid date cannot precede the generation date")
	}

	charge.PaidAt = &paid
	charge.Status = StatusPaid
	if err := s.repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

// MarkPending reverses a payment unconditionally. Used for reversals,
// so there is deliberately no already-pending guard.
func (s *Service) MarkPending(ctx context.Context, chargeID int) (*Charge, error) {
	charge, err := s.repo.Get(ctx, chargeID)
	if err != nil {
		return nil, err
	}

	charge.PaidAt = nil
	charge.Status = StatusPending
	if err := s.repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *Service) Get(ctx context.Context, chargeID int) (*Charge, error) {
	return s.repo.Get(ctx, chargeID)
}

func (s *Service) ListForChild(ctx context.Context, childID int) ([]*Charge, error) {
	if _, err := s.children.GetChild(ctx, childID); err != nil {
		return nil, err
	}
	return s.repo.ListForChild(ctx, childID)
}

// BulkGenerate bills every active child with a payer for the period,
// strictly sequentially. Already-billed children are skipped; other
// failures are collected and raised in aggregate after attempting all
// children, keeping the charges that did generate.
func (s *Service) BulkGenerate(ctx context.Context, month, year int) ([]*Charge, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}

	children, err := s.children.ListActiveBillable(ctx)
	if err != nil {
		return nil, err
	}

	var charges []*Charge
	var failures []error
	for _, child := range children {
		charge, err := s.Generate(ctx, child.ID, month, year)
		if err != nil {
			if faults.Is(err, faults.Conflict) {
				continue
			}
			failures = append(failures, fmt.Errorf("child %d: %w", child.ID, err))
			continue
		}
		charges = append(charges, charge)
	}

	if len(failures) > 0 {
		return charges, errors.Join(failures...)
	}
	return charges, nil
}
