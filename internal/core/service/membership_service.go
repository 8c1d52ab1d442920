package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

const accessLevelMultiplier = 1.5

// MembershipService validates membership plans, derives prices, and enforces
// type uniqueness. Deleting a plan is modeled as Deactivate only: the row is
// kept so clients and assignments referencing it keep resolving.
type MembershipService struct {
	membershipRepo  repository.MembershipRepository
	basePricePerDay float64
	log             zerolog.Logger
}

func NewMembershipService(membershipRepo repository.MembershipRepository, basePricePerDay float64, log zerolog.Logger) *MembershipService {
	return &MembershipService{
		membershipRepo:  membershipRepo,
		basePricePerDay: basePricePerDay,
		log:             log.With().Str("component", "membership_service").Logger(),
	}
}

// Create validates the plan, derives the price when none is supplied, and
// persists it. Returns the new plan id.
func (s *MembershipService) Create(ctx context.Context, membership *domain.Membership) (int64, error) {
	if err := validateMembership(membership); err != nil {
		return 0, err
	}

	unique, err := s.membershipRepo.IsTypeUnique(ctx, membership.Type, 0)
	if err != nil {
		return 0, err
	}
	if !unique {
		return 0, domain.Duplicatef("membership with type %q already exists", membership.Type)
	}

	if membership.Price <= 0 {
		price, err := s.CalculatePrice(membership.DurationDays, membership.AccessLevel)
		if err != nil {
			return 0, err
		}
		membership.Price = price
	}

	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return 0, err
	}

	s.log.Info().Int64("membership_id", membership.ID).Str("type", membership.Type).Msg("membership created")
	return membership.ID, nil
}

func (s *MembershipService) Update(ctx context.Context, membership *domain.Membership) error {
	if err := validateMembership(membership); err != nil {
		return err
	}

	existing, err := s.membershipRepo.FindByID(ctx, membership.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundf("membership with id %d not found", membership.ID)
	}

	unique, err := s.membershipRepo.IsTypeUnique(ctx, membership.Type, membership.ID)
	if err != nil {
		return err
	}
	if !unique {
		return domain.Duplicatef("membership with type %q already exists", membership.Type)
	}

	if membership.Price <= 0 {
		price, err := s.CalculatePrice(membership.DurationDays, membership.AccessLevel)
		if err != nil {
			return err
		}
		membership.Price = price
	}

	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return err
	}

	s.log.Info().Int64("membership_id", membership.ID).Msg("membership updated")
	return nil
}

// Deactivate soft-deletes a plan by clearing its active flag.
func (s *MembershipService) Deactivate(ctx context.Context, id int64) error {
	membership, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if membership == nil {
		return domain.NotFoundf("membership with id %d not found", id)
	}
	if !membership.IsActive {
		return domain.Rulef("membership with id %d is already inactive", id)
	}

	if err := s.membershipRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("membership_id", id).Msg("membership deactivated")
	return nil
}

func (s *MembershipService) Get(ctx context.Context, id int64) (*domain.Membership, error) {
	membership, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.NotFoundf("membership with id %d not found", id)
	}
	return membership, nil
}

// GetByType returns the plan whose type matches case-insensitively, or
// (nil, nil) when there is none.
func (s *MembershipService) GetByType(ctx context.Context, membershipType string) (*domain.Membership, error) {
	if strings.TrimSpace(membershipType) == "" {
		return nil, domain.Validationf("membership type cannot be empty")
	}
	return s.membershipRepo.FindByType(ctx, membershipType)
}

func (s *MembershipService) List(ctx context.Context) ([]*domain.Membership, error) {
	return s.membershipRepo.List(ctx)
}

func (s *MembershipService) ListActive(ctx context.Context) ([]*domain.Membership, error) {
	return s.membershipRepo.ListActive(ctx)
}

// IsTypeUnique is exposed for pre-validation (form checks) without committing.
func (s *MembershipService) IsTypeUnique(ctx context.Context, membershipType string, excludeID int64) (bool, error) {
	if strings.TrimSpace(membershipType) == "" {
		return false, domain.Validationf("membership type cannot be empty")
	}
	return s.membershipRepo.IsTypeUnique(ctx, membershipType, excludeID)
}

// CalculatePrice derives a plan price from its duration and access level:
// basePricePerDay * days, times 1 + (level-1)*1.5, with a 10% discount from
// 180 days and 5% from 90, rounded to two decimals.
func (s *MembershipService) CalculatePrice(durationDays, accessLevel int) (float64, error) {
	if durationDays <= 0 {
		return 0, domain.Validationf("duration must be greater than 0 days")
	}
	if accessLevel < 1 || accessLevel > 3 {
		return 0, domain.Validationf("access level must be between 1 and 3")
	}

	price := s.basePricePerDay * float64(durationDays)
	price *= 1 + float64(accessLevel-1)*accessLevelMultiplier

	switch {
	case durationDays >= 180:
		price *= 0.90
	case durationDays >= 90:
		price *= 0.95
	}

	return round2(price), nil
}

func validateMembership(membership *domain.Membership) error {
	if membership == nil {
		return domain.Validationf("membership cannot be nil")
	}
	if strings.TrimSpace(membership.Type) == "" {
		return domain.Validationf("membership type cannot be empty")
	}
	if membership.DurationDays <= 0 {
		return domain.Validationf("duration must be greater than 0 days")
	}
	if membership.AccessLevel < 1 || membership.AccessLevel > 3 {
		return domain.Validationf("access level must be between 1 and 3")
	}
	if membership.Price < 0 {
		return domain.Validationf("price cannot be negative")
	}
	return nil
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
