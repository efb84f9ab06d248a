package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ChildInfo is the slice of a child record the billing side needs.
type ChildInfo struct {
	ID             int
	Name           string
	EnrollmentDate time.Time
	Active         bool
	PayerID        *int
}

type ChildReader interface {
	GetChild(ctx context.Context, childID int) (*ChildInfo, error)

	// CountActiveSiblings counts the OTHER active children billed to the
	// same payer.
	CountActiveSiblings(ctx context.Context, payerID int, excludeChildID int) (int, error)

	// ListActiveBillable returns every active child that has a payer
	// assigned, for bulk charge generation.
	ListActiveBillable(ctx context.Context) ([]*ChildInfo, error)
}

type RateReader interface {
	// RateFor returns the fixed monthly rate whose validity range covers
	// the date, or decimal zero when no version covers it.
	RateFor(ctx context.Context, date time.Time) (decimal.Decimal, error)

	// CurrentRate is RateFor(today).
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

type MealCostReader interface {
	// MonthlyCost sums the billed cost of every recorded consumption for
	// the child in the given month.
	MonthlyCost(ctx context.Context, childID, month, year int) (decimal.Decimal, error)
}
