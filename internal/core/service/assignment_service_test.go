package service

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/fitclub/internal/core/domain"
)

func TestAssign(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	start := time.Now()
	assignment, err := env.assignments.Assign(ctx, client.ID, plan.ID, start)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	wantEnd := start.AddDate(0, 0, 30)
	if !assignment.EndDate.Equal(wantEnd) {
		t.Errorf("end date = %v, want %v", assignment.EndDate, wantEnd)
	}

	active, err := env.assignments.HasActiveMembership(ctx, client.ID)
	if err != nil {
		t.Fatalf("HasActiveMembership failed: %v", err)
	}
	if !active {
		t.Error("HasActiveMembership = false right after assigning")
	}
}

func TestAssignRequiresBothSides(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	if _, err := env.assignments.Assign(ctx, 999, plan.ID, time.Now()); !domain.IsNotFound(err) {
		t.Errorf("Assign with unknown member = %v, want not-found error", err)
	}
	if _, err := env.assignments.Assign(ctx, client.ID, 999, time.Now()); !domain.IsNotFound(err) {
		t.Errorf("Assign with unknown plan = %v, want not-found error", err)
	}
}

func TestAssignRejectsInactivePlan(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	retired := env.mustCreateMembership(t, "Retired", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	if err := env.memberships.Deactivate(ctx, retired.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if _, err := env.assignments.Assign(ctx, client.ID, retired.ID, time.Now()); !domain.IsBusinessRule(err) {
		t.Errorf("Assign inactive plan = %v, want business-rule error", err)
	}
}

func TestAssignOnlyOneActiveAtATime(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	if _, err := env.assignments.Assign(ctx, client.ID, plan.ID, time.Now()); err != nil {
		t.Fatalf("first Assign failed: %v", err)
	}

	if _, err := env.assignments.Assign(ctx, client.ID, plan.ID, time.Now()); !domain.IsBusinessRule(err) {
		t.Errorf("second Assign = %v, want business-rule error", err)
	}
}

func TestAssignAgainAfterExpiry(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	// first assignment ran out 70 days ago
	if _, err := env.assignments.Assign(ctx, client.ID, plan.ID, time.Now().AddDate(0, 0, -100)); err != nil {
		t.Fatalf("expired Assign failed: %v", err)
	}

	if _, err := env.assignments.Assign(ctx, client.ID, plan.ID, time.Now()); err != nil {
		t.Errorf("Assign after expiry = %v, want success", err)
	}

	history, err := env.assignments.GetByMember(ctx, client.ID)
	if err != nil {
		t.Fatalf("GetByMember failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("member history has %d rows, want 2", len(history))
	}
}

func TestGetExpiredOrdering(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	older := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)
	newer := env.mustRegisterClient(t, "Boris", "Jones", "555-0200", plan.ID)

	if _, err := env.assignments.Assign(ctx, newer.ID, plan.ID, time.Now().AddDate(0, 0, -100)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := env.assignments.Assign(ctx, older.ID, plan.ID, time.Now().AddDate(0, 0, -200)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	expired, err := env.assignments.GetExpired(ctx)
	if err != nil {
		t.Fatalf("GetExpired failed: %v", err)
	}
	if len(expired) != 2 {
		t.Fatalf("GetExpired returned %d rows, want 2", len(expired))
	}
	// oldest expiry first
	if expired[0].MemberID != older.ID || expired[1].MemberID != newer.ID {
		t.Errorf("GetExpired order: got members %d, %d; want %d, %d",
			expired[0].MemberID, expired[1].MemberID, older.ID, newer.ID)
	}
}

func TestGetExpiring(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	client := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", plan.ID)

	// ends roughly 10 days from now
	if _, err := env.assignments.Assign(ctx, client.ID, plan.ID, time.Now().AddDate(0, 0, -20)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if _, err := env.assignments.GetExpiring(ctx, -1); !domain.IsValidation(err) {
		t.Fatalf("GetExpiring(-1) = %v, want validation error", err)
	}

	within15, err := env.assignments.GetExpiring(ctx, 15)
	if err != nil {
		t.Fatalf("GetExpiring failed: %v", err)
	}
	if len(within15) != 1 {
		t.Errorf("GetExpiring(15) returned %d rows, want 1", len(within15))
	}

	within5, err := env.assignments.GetExpiring(ctx, 5)
	if err != nil {
		t.Fatalf("GetExpiring failed: %v", err)
	}
	if len(within5) != 0 {
		t.Errorf("GetExpiring(5) returned %d rows, want 0", len(within5))
	}
}

func TestDaysUntilExpiration(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := env.assignments.DaysUntilExpiration(nil); !domain.IsValidation(err) {
		t.Errorf("DaysUntilExpiration(nil) = %v, want validation error", err)
	}

	expired := &domain.Assignment{EndDate: time.Now().AddDate(0, 0, -5)}
	days, err := env.assignments.DaysUntilExpiration(expired)
	if err != nil {
		t.Fatalf("DaysUntilExpiration failed: %v", err)
	}
	if days != 0 {
		t.Errorf("days for an expired assignment = %d, want 0", days)
	}

	current := &domain.Assignment{EndDate: time.Now().AddDate(0, 0, 10)}
	days, err = env.assignments.DaysUntilExpiration(current)
	if err != nil {
		t.Fatalf("DaysUntilExpiration failed: %v", err)
	}
	// whole days; the fractional tail of "10 days from now" truncates to 9
	if days < 9 || days > 10 {
		t.Errorf("days until expiration = %d, want 9 or 10", days)
	}
}

func TestTotalRevenue(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	standard := env.mustCreateMembership(t, "Standard", 30, 1, 3000)
	premium := env.mustCreateMembership(t, "Premium", 90, 3, 500)
	anna := env.mustRegisterClient(t, "Anna", "Smith", "555-0100", standard.ID)
	boris := env.mustRegisterClient(t, "Boris", "Jones", "555-0200", premium.ID)

	if _, err := env.assignments.Assign(ctx, anna.ID, standard.ID, time.Now()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := env.assignments.Assign(ctx, boris.ID, premium.ID, time.Now()); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	total, err := env.assignments.TotalRevenue(ctx, from, to)
	if err != nil {
		t.Fatalf("TotalRevenue failed: %v", err)
	}
	if total != 3500 {
		t.Errorf("TotalRevenue = %v, want 3500", total)
	}

	// a window before both start dates counts nothing
	total, err = env.assignments.TotalRevenue(ctx, from.AddDate(0, -1, 0), to.AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("TotalRevenue failed: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalRevenue outside window = %v, want 0", total)
	}
}

func TestCalculateEndDate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end, err := env.assignments.CalculateEndDate(ctx, plan.ID, start)
	if err != nil {
		t.Fatalf("CalculateEndDate failed: %v", err)
	}
	want := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("end date = %v, want %v", end, want)
	}

	if _, err := env.assignments.CalculateEndDate(ctx, 999, start); !domain.IsNotFound(err) {
		t.Errorf("CalculateEndDate unknown plan = %v, want not-found error", err)
	}
}
