package service

import (
	"context"
	"testing"

	"github.com/martijn/fitclub/internal/core/domain"
)

func TestCalculatePrice(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name         string
		durationDays int
		accessLevel  int
		want         float64
	}{
		{name: "30 days level 1, no discount", durationDays: 30, accessLevel: 1, want: 3000.00},
		{name: "200 days level 3, 10% discount", durationDays: 200, accessLevel: 3, want: 72000.00},
		{name: "90 days level 1, 5% discount from the boundary", durationDays: 90, accessLevel: 1, want: 8550.00},
		{name: "89 days level 1, just under the 5% boundary", durationDays: 89, accessLevel: 1, want: 8900.00},
		{name: "180 days level 2, 10% discount from the boundary", durationDays: 180, accessLevel: 2, want: 40500.00},
		{name: "179 days level 2, still 5% discount", durationDays: 179, accessLevel: 2, want: 42512.50},
		{name: "single day level 1", durationDays: 1, accessLevel: 1, want: 100.00},
		{name: "single day level 3, multiplier x4", durationDays: 1, accessLevel: 3, want: 400.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.memberships.CalculatePrice(tt.durationDays, tt.accessLevel)
			if err != nil {
				t.Fatalf("CalculatePrice(%d, %d) failed: %v", tt.durationDays, tt.accessLevel, err)
			}
			if got != tt.want {
				t.Errorf("CalculatePrice(%d, %d) = %v, want %v", tt.durationDays, tt.accessLevel, got, tt.want)
			}
		})
	}
}

func TestCalculatePriceRejectsInvalidInput(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name         string
		durationDays int
		accessLevel  int
	}{
		{name: "zero duration", durationDays: 0, accessLevel: 1},
		{name: "negative duration", durationDays: -30, accessLevel: 2},
		{name: "access level below range", durationDays: 30, accessLevel: 0},
		{name: "access level above range", durationDays: 30, accessLevel: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.memberships.CalculatePrice(tt.durationDays, tt.accessLevel)
			if !domain.IsValidation(err) {
				t.Errorf("CalculatePrice(%d, %d) = %v, want validation error", tt.durationDays, tt.accessLevel, err)
			}
		})
	}
}

func TestCreateMembershipDerivesPrice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	membership := domain.NewMembership("Standard", 30, 1)
	id, err := env.memberships.Create(ctx, membership)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created, err := env.memberships.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if created.Price != 3000.00 {
		t.Errorf("derived price = %v, want 3000.00", created.Price)
	}
}

func TestCreateMembershipKeepsExplicitPrice(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	membership := domain.NewMembership("Promo", 30, 1)
	membership.Price = 1234.56
	id, err := env.memberships.Create(ctx, membership)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created, err := env.memberships.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if created.Price != 1234.56 {
		t.Errorf("price = %v, want 1234.56", created.Price)
	}
}

func TestCreateMembershipValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		membership *domain.Membership
	}{
		{name: "blank type", membership: domain.NewMembership("   ", 30, 1)},
		{name: "zero duration", membership: domain.NewMembership("Standard", 0, 1)},
		{name: "access level out of range", membership: domain.NewMembership("Standard", 30, 5)},
		{
			name: "negative price",
			membership: func() *domain.Membership {
				m := domain.NewMembership("Standard", 30, 1)
				m.Price = -1
				return m
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.memberships.Create(ctx, tt.membership); !domain.IsValidation(err) {
				t.Errorf("Create = %v, want validation error", err)
			}
		})
	}
}

func TestCreateMembershipDuplicateTypeIsCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.mustCreateMembership(t, "Standard", 30, 1, 0)

	_, err := env.memberships.Create(ctx, domain.NewMembership("sTANDARD", 60, 2))
	if !domain.IsDuplicate(err) {
		t.Errorf("Create with duplicate type = %v, want duplicate error", err)
	}
}

func TestUpdateMembership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	standard := env.mustCreateMembership(t, "Standard", 30, 1, 0)
	env.mustCreateMembership(t, "Premium", 90, 3, 0)

	t.Run("unknown id", func(t *testing.T) {
		missing := domain.NewMembership("Gold", 30, 1)
		missing.ID = 999
		if err := env.memberships.Update(ctx, missing); !domain.IsNotFound(err) {
			t.Errorf("Update = %v, want not-found error", err)
		}
	})

	t.Run("type collision with another plan", func(t *testing.T) {
		update := domain.NewMembership("premium", 30, 1)
		update.ID = standard.ID
		if err := env.memberships.Update(ctx, update); !domain.IsDuplicate(err) {
			t.Errorf("Update = %v, want duplicate error", err)
		}
	})

	t.Run("keeping own type is not a collision", func(t *testing.T) {
		update := domain.NewMembership("Standard", 60, 2)
		update.ID = standard.ID
		if err := env.memberships.Update(ctx, update); err != nil {
			t.Errorf("Update failed: %v", err)
		}
	})

	t.Run("zero price is re-derived", func(t *testing.T) {
		update := domain.NewMembership("Standard", 30, 1)
		update.ID = standard.ID
		if err := env.memberships.Update(ctx, update); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := env.memberships.Get(ctx, standard.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Price != 3000.00 {
			t.Errorf("re-derived price = %v, want 3000.00", got.Price)
		}
	})
}

func TestDeactivateMembership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)

	if err := env.memberships.Deactivate(ctx, plan.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	// soft delete: gone from the active listing, still resolvable by id
	active, err := env.memberships.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	for _, m := range active {
		if m.ID == plan.ID {
			t.Errorf("deactivated plan %d still listed as active", plan.ID)
		}
	}

	got, err := env.memberships.Get(ctx, plan.ID)
	if err != nil {
		t.Fatalf("Get after deactivate failed: %v", err)
	}
	if got.IsActive {
		t.Error("plan still marked active after deactivate")
	}

	if err := env.memberships.Deactivate(ctx, plan.ID); !domain.IsBusinessRule(err) {
		t.Errorf("second Deactivate = %v, want business-rule error", err)
	}

	if err := env.memberships.Deactivate(ctx, 999); !domain.IsNotFound(err) {
		t.Errorf("Deactivate unknown id = %v, want not-found error", err)
	}
}

func TestGetByType(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)

	got, err := env.memberships.GetByType(ctx, "sTanDard")
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if got == nil || got.ID != plan.ID {
		t.Errorf("GetByType did not match case-insensitively: got %+v", got)
	}

	missing, err := env.memberships.GetByType(ctx, "Platinum")
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetByType for unknown type = %+v, want nil", missing)
	}

	if _, err := env.memberships.GetByType(ctx, "  "); !domain.IsValidation(err) {
		t.Errorf("GetByType with blank type = %v, want validation error", err)
	}
}

func TestIsTypeUnique(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	plan := env.mustCreateMembership(t, "Standard", 30, 1, 0)

	unique, err := env.memberships.IsTypeUnique(ctx, "standard", 0)
	if err != nil {
		t.Fatalf("IsTypeUnique failed: %v", err)
	}
	if unique {
		t.Error("IsTypeUnique = true for an existing type")
	}

	unique, err = env.memberships.IsTypeUnique(ctx, "standard", plan.ID)
	if err != nil {
		t.Fatalf("IsTypeUnique failed: %v", err)
	}
	if !unique {
		t.Error("IsTypeUnique = false when excluding the plan itself")
	}
}
