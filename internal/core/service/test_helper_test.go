package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/infrastructure/sqlite"
)

// testEnv wires real repositories against an in-memory SQLite database so the
// services are tested with the same SQL they run in production.
type testEnv struct {
	db          *sqlite.DB
	memberships *MembershipService
	clients     *ClientService
	assignments *AssignmentService
	trainers    *TrainerService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clientRepo := sqlite.NewClientRepository(db)
	membershipRepo := sqlite.NewMembershipRepository(db)
	assignmentRepo := sqlite.NewAssignmentRepository(db)
	trainerRepo := sqlite.NewTrainerRepository(db)

	log := zerolog.Nop()

	return &testEnv{
		db:          db,
		memberships: NewMembershipService(membershipRepo, 100, log),
		clients:     NewClientService(clientRepo, membershipRepo, assignmentRepo, true, log),
		assignments: NewAssignmentService(assignmentRepo, clientRepo, membershipRepo, log),
		trainers:    NewTrainerService(trainerRepo, log),
	}
}

func (env *testEnv) mustCreateMembership(t *testing.T, membershipType string, durationDays, accessLevel int, price float64) *domain.Membership {
	t.Helper()

	membership := domain.NewMembership(membershipType, durationDays, accessLevel)
	membership.Price = price
	if _, err := env.memberships.Create(context.Background(), membership); err != nil {
		t.Fatalf("failed to create membership %q: %v", membershipType, err)
	}
	return membership
}

func (env *testEnv) mustRegisterClient(t *testing.T, firstName, lastName, phone string, membershipID int64) *domain.Client {
	t.Helper()

	client := domain.NewClient(firstName, lastName, phone, membershipID)
	if _, err := env.clients.Register(context.Background(), client); err != nil {
		t.Fatalf("failed to register client %s %s: %v", firstName, lastName, err)
	}
	return client
}
