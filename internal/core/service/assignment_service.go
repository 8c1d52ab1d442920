package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

// AssignmentService manages the member-to-plan assignment lifecycle. An
// assignment is created active, expires naturally once its end date passes,
// and is never mutated; renewal is a new row.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	clientRepo     repository.ClientRepository
	membershipRepo repository.MembershipRepository
	log            zerolog.Logger
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	clientRepo repository.ClientRepository,
	membershipRepo repository.MembershipRepository,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		clientRepo:     clientRepo,
		membershipRepo: membershipRepo,
		log:            log.With().Str("component", "assignment_service").Logger(),
	}
}

// Assign gives a member a plan starting at start; the end date is start plus
// the plan duration. A member can hold only one assignment at a time whose end
// date has not passed.
func (s *AssignmentService) Assign(ctx context.Context, memberID, membershipID int64, start time.Time) (*domain.Assignment, error) {
	member, err := s.clientRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.NotFoundf("client with id %d not found", memberID)
	}

	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.NotFoundf("membership with id %d not found", membershipID)
	}
	if !membership.IsActive {
		return nil, domain.Rulef("cannot assign an inactive membership")
	}

	end := start.AddDate(0, 0, membership.DurationDays)

	assignment, err := s.assignmentRepo.Assign(ctx, memberID, membershipID, start, end)
	if err != nil {
		if errors.Is(err, repository.ErrActiveAssignment) {
			return nil, domain.Rulef("client with id %d already has an active membership assignment", memberID)
		}
		return nil, err
	}

	s.log.Info().
		Int64("assignment_id", assignment.ID).
		Int64("client_id", memberID).
		Int64("membership_id", membershipID).
		Time("end_date", end).
		Msg("membership assigned")
	return assignment, nil
}

// CalculateEndDate reports when an assignment of the given plan would end if
// started at start, without committing anything.
func (s *AssignmentService) CalculateEndDate(ctx context.Context, membershipID int64, start time.Time) (time.Time, error) {
	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil {
		return time.Time{}, err
	}
	if membership == nil {
		return time.Time{}, domain.NotFoundf("membership with id %d not found", membershipID)
	}
	return start.AddDate(0, 0, membership.DurationDays), nil
}

func (s *AssignmentService) GetByMember(ctx context.Context, memberID int64) ([]*domain.AssignmentDetail, error) {
	return s.assignmentRepo.FindByMember(ctx, memberID)
}

func (s *AssignmentService) HasActiveMembership(ctx context.Context, memberID int64) (bool, error) {
	count, err := s.assignmentRepo.CountActiveByMember(ctx, memberID, time.Now())
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *AssignmentService) GetActive(ctx context.Context) ([]*domain.AssignmentDetail, error) {
	return s.assignmentRepo.FindActive(ctx, time.Now())
}

// GetExpired returns assignments past their end date, oldest expiry first.
func (s *AssignmentService) GetExpired(ctx context.Context) ([]*domain.AssignmentDetail, error) {
	return s.assignmentRepo.FindExpired(ctx, time.Now())
}

// GetExpiring returns assignments ending within daysThreshold days from now,
// ascending by end date.
func (s *AssignmentService) GetExpiring(ctx context.Context, daysThreshold int) ([]*domain.AssignmentDetail, error) {
	if daysThreshold < 0 {
		return nil, domain.Validationf("days threshold cannot be negative")
	}
	now := time.Now()
	return s.assignmentRepo.FindExpiring(ctx, now, now.AddDate(0, 0, daysThreshold))
}

// DaysUntilExpiration reports the whole days left on an assignment, never
// negative.
func (s *AssignmentService) DaysUntilExpiration(assignment *domain.Assignment) (int, error) {
	if assignment == nil {
		return 0, domain.Validationf("assignment cannot be nil")
	}
	days := int(time.Until(assignment.EndDate).Hours() / 24)
	if days < 0 {
		return 0, nil
	}
	return days, nil
}

// TotalRevenue sums the plan price of every assignment whose start date falls
// within [start, end].
func (s *AssignmentService) TotalRevenue(ctx context.Context, start, end time.Time) (float64, error) {
	return s.assignmentRepo.SumPlanPrice(ctx, start, end)
}
