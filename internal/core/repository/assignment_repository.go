package repository

import (
	"context"
	"time"

	"github.com/martijn/fitclub/internal/core/domain"
)

type AssignmentRepository interface {
	// Assign inserts a new assignment row after verifying, inside the same
	// transaction, that the member holds no assignment with end_date >= now.
	// Returns ErrActiveAssignment when that check fails.
	Assign(ctx context.Context, memberID, membershipID int64, start, end time.Time) (*domain.Assignment, error)

	FindByID(ctx context.Context, id int64) (*domain.Assignment, error)

	// FindByMember returns all assignments for a member, newest end date first.
	FindByMember(ctx context.Context, memberID int64) ([]*domain.AssignmentDetail, error)

	// CountActiveByMember counts assignments with end_date >= now.
	CountActiveByMember(ctx context.Context, memberID int64, now time.Time) (int, error)

	// FindActive returns assignments with end_date >= now.
	FindActive(ctx context.Context, now time.Time) ([]*domain.AssignmentDetail, error)

	// FindExpired returns assignments with end_date < now, oldest expiry first.
	FindExpired(ctx context.Context, now time.Time) ([]*domain.AssignmentDetail, error)

	// FindExpiring returns assignments with from <= end_date <= to, ascending
	// by end date.
	FindExpiring(ctx context.Context, from, to time.Time) ([]*domain.AssignmentDetail, error)

	// SumPlanPrice totals the plan price of every assignment whose start date
	// falls within [from, to].
	SumPlanPrice(ctx context.Context, from, to time.Time) (float64, error)
}
