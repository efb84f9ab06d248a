package consumption

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"guarderia/internal/catalog"
	"guarderia/internal/clock"
	"guarderia/internal/core"
	"guarderia/internal/faults"
	"guarderia/internal/menu"
)

var (
	testToday    = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	testEnrolled = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
)

type stubChildren struct{}

func (stubChildren) GetChild(_ context.Context, childID int) (*core.ChildInfo, error) {
	if childID != 1 {
		return nil, faults.NotFoundf("child %d not found", childID)
	}
	return &core.ChildInfo{ID: 1, Active: true, EnrollmentDate: testEnrolled}, nil
}

func (stubChildren) CountActiveSiblings(context.Context, int, int) (int, error) { return 0, nil }

func (stubChildren) ListActiveBillable(context.Context) ([]*core.ChildInfo, error) {
	return nil, nil
}

type stubChecker struct {
	unsafeMenus map[int]bool
}

func (s stubChecker) IsSafeMenu(_ context.Context, _ int, menuID int) (bool, error) {
	return !s.unsafeMenus[menuID], nil
}

type fixture struct {
	service *Service
	menus   *menu.Service
	catalog *catalog.Service
	checker stubChecker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := catalog.NewService(catalog.NewInMemoryRepository())
	menus := menu.NewService(menu.NewInMemoryRepository(), cat, nil)
	checker := stubChecker{unsafeMenus: make(map[int]bool)}
	service := NewService(NewInMemoryRepository(), stubChildren{}, menus, checker, clock.Fixed{T: testToday})
	return &fixture{service: service, menus: menus, catalog: cat, checker: checker}
}

func (f *fixture) seedMenu(t *testing.T, name string, price int64) *menu.Menu {
	t.Helper()
	ctx := context.Background()
	ing, err := f.catalog.CreateIngredient(ctx, name+" base", "", false)
	if err != nil {
		t.Fatalf("seeding ingredient: %v", err)
	}
	dish, err := f.catalog.CreateDish(ctx, name+" dish", "MAIN", []catalog.DishIngredient{
		{IngredientID: ing.ID, Portion: "1"},
	})
	if err != nil {
		t.Fatalf("seeding dish: %v", err)
	}
	m, err := f.menus.Create(ctx, name, "", decimal.NewFromInt(price), []int{dish.ID})
	if err != nil {
		t.Fatalf("seeding menu: %v", err)
	}
	return m
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordSnapshotsMenuPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.seedMenu(t, "Monday", 5)

	con, err := f.service.Record(ctx, 1, m.ID, day(3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !con.BilledCost.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected billed cost 5, got %s", con.BilledCost)
	}

	// later price edits must not touch the recorded cost
	if _, err := f.menus.Update(ctx, m.ID, "Monday", "", decimal.NewFromInt(9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.service.repo.Get(ctx, con.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BilledCost.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("billed cost changed after menu edit, got %s", got.BilledCost)
	}
}

func TestRecordRejectsUnsafeMenu(t *testing.T) {
	f := newFixture(t)
	m := f.seedMenu(t, "Monday", 5)
	f.checker.unsafeMenus[m.ID] = true

	_, err := f.service.Record(context.Background(), 1, m.ID, day(3), "")
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRecordRejectsInactiveMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.seedMenu(t, "Monday", 5)

	if _, err := f.menus.SetActive(ctx, m.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := f.service.Record(ctx, 1, m.ID, day(3), "")
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRecordRejectsFutureAndPreEnrollmentDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.seedMenu(t, "Monday", 5)

	if _, err := f.service.Record(ctx, 1, m.ID, testToday.AddDate(0, 0, 1), ""); !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure for future day, got %v", err)
	}
	if _, err := f.service.Record(ctx, 1, m.ID, testEnrolled.AddDate(0, 0, -1), ""); !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure for pre-enrollment day, got %v", err)
	}
}

func TestRecordDuplicateDayConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1 := f.seedMenu(t, "Monday", 5)
	m2 := f.seedMenu(t, "Tuesday", 6)

	if _, err := f.service.Record(ctx, 1, m1.ID, day(3), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.service.Record(ctx, 1, m2.ID, day(3), ""); !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestReassignReSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1 := f.seedMenu(t, "Monday", 5)
	m2 := f.seedMenu(t, "Tuesday", 8)

	con, err := f.service.Record(ctx, 1, m1.ID, day(3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.service.Reassign(ctx, con.ID, m2.ID, "swapped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MenuID != m2.ID {
		t.Fatalf("expected menu %d, got %d", m2.ID, got.MenuID)
	}
	if !got.BilledCost.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected re-snapshotted cost 8, got %s", got.BilledCost)
	}
	if !got.Day.Equal(day(3)) {
		t.Fatalf("day must stay fixed, got %v", got.Day)
	}
}

func TestReassignRejectsUnsafeMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1 := f.seedMenu(t, "Monday", 5)
	m2 := f.seedMenu(t, "Tuesday", 8)
	f.checker.unsafeMenus[m2.ID] = true

	con, err := f.service.Record(ctx, 1, m1.ID, day(3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.service.Reassign(ctx, con.ID, m2.ID, ""); !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMonthlyCostSumsBilledCosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1 := f.seedMenu(t, "Monday", 5)
	m2 := f.seedMenu(t, "Tuesday", 6)

	if _, err := f.service.Record(ctx, 1, m1.ID, day(3), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.service.Record(ctx, 1, m2.ID, day(4), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := f.service.MonthlyCost(ctx, 1, 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(11)) {
		t.Fatalf("expected monthly cost 11, got %s", sum)
	}
}
