package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"guarderia/internal/clock"
	"guarderia/internal/core"
)

// DiscountEngine computes the stacked monthly discounts. Each component
// is best-effort: a failure inside one computation contributes zero to
// the sum instead of failing the billing run.
//
// Sibling and tenure discounts are percentages of the CURRENT fixed
// rate, while the seasonal discount uses the rate of the billed month.
// The asymmetry is part of the policy, not an accident.
type DiscountEngine struct {
	children core.ChildReader
	rates    core.RateReader
	clock    clock.Clock
}

func NewDiscountEngine(children core.ChildReader, rates core.RateReader, clk clock.Clock) *DiscountEngine {
	return &DiscountEngine{children: children, rates: rates, clock: clk}
}

// ComputeDiscounts sums the sibling, seasonal and tenure components for
// the child's bill of month/year.
func (e *DiscountEngine) ComputeDiscounts(ctx context.Context, childID, month, year int) decimal.Decimal {
	total := e.siblingDiscount(ctx, childID)
	total = total.Add(e.seasonalDiscount(ctx, month, year))
	total = total.Add(e.tenureDiscount(ctx, childID))
	return total
}

// siblingDiscount tiers on the count of other active children billed to
// the same payer: 1 sibling 10%, 2 15%, 3 20%, 4 or more 25%.
func (e *DiscountEngine) siblingDiscount(ctx context.Context, childID int) decimal.Decimal {
	child, err := e.children.GetChild(ctx, childID)
	if err != nil || child.PayerID == nil {
		return decimal.Zero
	}

	siblings, err := e.children.CountActiveSiblings(ctx, *child.PayerID, childID)
	if err != nil {
		return decimal.Zero
	}

	rate, err := e.rates.CurrentRate(ctx)
	if err != nil {
		return decimal.Zero
	}

	return rate.Mul(siblingPct(siblings))
}

// seasonalDiscount is a flat promotional schedule keyed by calendar
// month, applied to the fixed rate of the billed month itself.
func (e *DiscountEngine) seasonalDiscount(ctx context.Context, month, year int) decimal.Decimal {
	pct := seasonalPct(month)
	if pct.IsZero() {
		return decimal.Zero
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	rate, err := e.rates.RateFor(ctx, firstDay)
	if err != nil {
		return decimal.Zero
	}

	return rate.Mul(pct)
}

// tenureDiscount tiers on whole 365.25-day years since enrollment:
// 1 year 5%, 2 years 10%, 3 or more 15%.
func (e *DiscountEngine) tenureDiscount(ctx context.Context, childID int) decimal.Decimal {
	child, err := e.children.GetChild(ctx, childID)
	if err != nil {
		return decimal.Zero
	}

	days := e.clock.Now().Sub(child.EnrollmentDate).Hours() / 24
	years := int(days / 365.25)

	pct := tenurePct(years)
	if pct.IsZero() {
		return decimal.Zero
	}

	rate, err := e.rates.CurrentRate(ctx)
	if err != nil {
		return decimal.Zero
	}

	return rate.Mul(pct)
}

func siblingPct(siblings int) decimal.Decimal {
	switch {
	case siblings >= 4:
		return decimal.NewFromFloat(0.25)
	case siblings == 3:
		return decimal.NewFromFloat(0.20)
	case siblings == 2:
		return decimal.NewFromFloat(0.15)
	case siblings == 1:
		return decimal.NewFromFloat(0.10)
	}
	return decimal.Zero
}

func seasonalPct(month int) decimal.Decimal {
	switch time.Month(month) {
	case time.January, time.February:
		return decimal.NewFromFloat(0.05)
	case time.June, time.July:
		return decimal.NewFromFloat(0.03)
	case time.December:
		return decimal.NewFromFloat(0.08)
	}
	return decimal.Zero
}

func tenurePct(years int) decimal.Decimal {
	switch {
	case years >= 3:
		return decimal.NewFromFloat(0.15)
	case years == 2:
		return decimal.NewFromFloat(0.10)
	case years == 1:
		return decimal.NewFromFloat(0.05)
	}
	return decimal.Zero
}
