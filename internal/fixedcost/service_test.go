package fixedcost

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"guarderia/internal/clock"
	"guarderia/internal/faults"
)

var testToday = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, clock.Fixed{T: testToday}), repo
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustCreate(t *testing.T, s *Service, amount int64, from time.Time) *Version {
	t.Helper()
	v, err := s.Create(context.Background(), decimal.NewFromInt(amount), from, "")
	if err != nil {
		t.Fatalf("creating version: %v", err)
	}
	return v
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), decimal.Zero, testToday, "")
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateRejectsPastValidFrom(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), decimal.NewFromInt(100), testToday.AddDate(0, 0, -1), "")
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestActivateAutoClosesPreviousVersion(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first := mustCreate(t, service, 100, testToday)
	if _, err := service.Activate(ctx, first.ID, date(2025, 3, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mustCreate(t, service, 120, date(2025, 4, 1))
	if _, err := service.Activate(ctx, second.ID, date(2025, 4, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	versions, err := service.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	activeCount := 0
	for _, v := range versions {
		if v.Active {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active version, got %d", activeCount)
	}

	closed, err := service.repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed.ValidTo == nil || !closed.ValidTo.Equal(date(2025, 3, 31)) {
		t.Fatalf("expected previous version closed at 2025-03-31, got %v", closed.ValidTo)
	}
}

func TestActivateAlreadyActiveConflicts(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	v := mustCreate(t, service, 100, testToday)
	if _, err := service.Activate(ctx, v.ID, date(2025, 3, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Activate(ctx, v.ID, date(2025, 4, 1)); !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestActivateRejectsStartNotAfterCurrent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first := mustCreate(t, service, 100, date(2025, 4, 1))
	if _, err := service.Activate(ctx, first.ID, date(2025, 4, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mustCreate(t, service, 120, date(2025, 4, 1))
	if _, err := service.Activate(ctx, second.ID, date(2025, 4, 1)); !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRateForPicksCoveringVersion(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first := mustCreate(t, service, 100, date(2025, 3, 10))
	if _, err := service.Activate(ctx, first.ID, date(2025, 3, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := mustCreate(t, service, 120, date(2025, 4, 1))
	if _, err := service.Activate(ctx, second.ID, date(2025, 4, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rate, err := service.RateFor(ctx, date(2025, 3, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected March rate 100, got %s", rate)
	}

	rate, err = service.RateFor(ctx, date(2025, 4, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected April rate 120, got %s", rate)
	}
}

func TestRateForUncoveredDayIsZero(t *testing.T) {
	service, _ := newTestService()

	rate, err := service.RateFor(context.Background(), date(2025, 1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.IsZero() {
		t.Fatalf("expected zero rate for uncovered day, got %s", rate)
	}
}

func TestDeactivateClosesToday(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	v := mustCreate(t, service, 100, testToday)
	if _, err := service.Activate(ctx, v.ID, testToday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	closed, err := service.Deactivate(ctx, v.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed.Active {
		t.Fatalf("expected version to be inactive")
	}
	if closed.ValidTo == nil || !closed.ValidTo.Equal(date(2025, 3, 10)) {
		t.Fatalf("expected valid_to today, got %v", closed.ValidTo)
	}
}
