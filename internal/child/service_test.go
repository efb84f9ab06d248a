package child

import (
	"context"
	"testing"
	"time"

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

func TestEnrollRejectsFutureEnrollmentDate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Enroll(context.Background(), "Ana", date(2022, 5, 1), testToday.AddDate(0, 0, 1), nil)
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestEnrollRejectsBirthAfterEnrollment(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Enroll(context.Background(), "Ana", date(2025, 2, 1), date(2024, 9, 1), nil)
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestEnrollRejectsInactivePayer(t *testing.T) {
	service, repo := newTestService()

	payer, err := service.CreatePayer(context.Background(), "Luis", "luis@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.payers[payer.ID].Active = false

	_, err = service.Enroll(context.Background(), "Ana", date(2022, 5, 1), date(2024, 9, 1), &payer.ID)
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestEnrollNormalizesDates(t *testing.T) {
	service, _ := newTestService()

	born := time.Date(2022, 5, 1, 17, 45, 0, 0, time.UTC)
	child, err := service.Enroll(context.Background(), "Ana", born, date(2024, 9, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !child.BirthDate.Equal(date(2022, 5, 1)) {
		t.Fatalf("expected birth date normalized to midnight UTC, got %v", child.BirthDate)
	}
	if !child.Active {
		t.Fatalf("expected new child to be active")
	}
}

func TestCountActiveSiblingsExcludesSelfAndInactive(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	payer, err := service.CreatePayer(ctx, "Luis", "luis@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []int
	for _, name := range []string{"Ana", "Ben", "Carla"} {
		c, err := service.Enroll(ctx, name, date(2022, 5, 1), date(2024, 9, 1), &payer.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, c.ID)
	}

	if _, err := service.Deactivate(ctx, ids[2]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := service.CountActiveSiblings(ctx, payer.ID, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 active sibling, got %d", n)
	}
}

func TestListActiveBillableSkipsUnassignedChildren(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	payer, err := service.CreatePayer(ctx, "Luis", "luis@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Enroll(ctx, "Ana", date(2022, 5, 1), date(2024, 9, 1), &payer.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Enroll(ctx, "Ben", date(2022, 5, 1), date(2024, 9, 1), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	billable, err := service.ListActiveBillable(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(billable) != 1 || billable[0].Name != "Ana" {
		t.Fatalf("expected only Ana to be billable, got %d entries", len(billable))
	}
}

func TestAssignPayerRejectsInactivePayer(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	payer, err := service.CreatePayer(ctx, "Luis", "luis@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child, err := service.Enroll(ctx, "Ana", date(2022, 5, 1), date(2024, 9, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.payers[payer.ID].Active = false

	if _, err := service.AssignPayer(ctx, child.ID, payer.ID); !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
