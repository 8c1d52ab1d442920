package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

// ClientService validates clients, enforces phone uniqueness and the
// active-plan rule, and stamps the join date server-side.
type ClientService struct {
	clientRepo     repository.ClientRepository
	membershipRepo repository.MembershipRepository
	assignmentRepo repository.AssignmentRepository
	// protectAssigned blocks deleting a client while they hold an assignment
	// whose end date has not passed.
	protectAssigned bool
	log             zerolog.Logger
}

func NewClientService(
	clientRepo repository.ClientRepository,
	membershipRepo repository.MembershipRepository,
	assignmentRepo repository.AssignmentRepository,
	protectAssigned bool,
	log zerolog.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:      clientRepo,
		membershipRepo:  membershipRepo,
		assignmentRepo:  assignmentRepo,
		protectAssigned: protectAssigned,
		log:             log.With().Str("component", "client_service").Logger(),
	}
}

// Register validates the client, requires an existing active plan and a unique
// phone, stamps the join date, and persists. Returns the new client id.
func (s *ClientService) Register(ctx context.Context, client *domain.Client) (int64, error) {
	if err := validateClient(client); err != nil {
		return 0, err
	}

	membership, err := s.membershipRepo.FindByID(ctx, client.MembershipID)
	if err != nil {
		return 0, err
	}
	if membership == nil {
		return 0, domain.Validationf("membership with id %d does not exist", client.MembershipID)
	}
	if !membership.IsActive {
		return 0, domain.Rulef("cannot register a client on an inactive membership")
	}

	unique, err := s.clientRepo.IsPhoneUnique(ctx, client.Phone, 0)
	if err != nil {
		return 0, err
	}
	if !unique {
		return 0, domain.Duplicatef("client with phone %s already exists", client.Phone)
	}

	// Join date is server time, never caller-supplied.
	client.JoinDate = time.Now()

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return 0, err
	}

	s.log.Info().Int64("client_id", client.ID).Str("name", client.FullName()).Msg("client registered")
	return client.ID, nil
}

// Update re-validates fields and the plan reference, re-checks phone
// uniqueness excluding the client itself, and preserves the stored join date.
func (s *ClientService) Update(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	existing, err := s.clientRepo.FindByID(ctx, client.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundf("client with id %d not found", client.ID)
	}

	membership, err := s.membershipRepo.FindByID(ctx, client.MembershipID)
	if err != nil {
		return err
	}
	if membership == nil {
		return domain.Validationf("membership with id %d does not exist", client.MembershipID)
	}

	unique, err := s.clientRepo.IsPhoneUnique(ctx, client.Phone, client.ID)
	if err != nil {
		return err
	}
	if !unique {
		return domain.Duplicatef("client with phone %s already exists", client.Phone)
	}

	client.JoinDate = existing.JoinDate

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return err
	}

	s.log.Info().Int64("client_id", client.ID).Msg("client updated")
	return nil
}

// Delete removes a client. With deletion protection on, a client holding an
// active assignment cannot be deleted.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NotFoundf("client with id %d not found", id)
	}

	if s.protectAssigned {
		active, err := s.assignmentRepo.CountActiveByMember(ctx, id, time.Now())
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.Rulef("client with id %d has an active membership assignment", id)
		}
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("client_id", id).Msg("client deleted")
	return nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NotFoundf("client with id %d not found", id)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx)
}

// Search matches term case-insensitively against first and last names.
func (s *ClientService) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.Validationf("search term cannot be empty")
	}
	return s.clientRepo.SearchByName(ctx, term)
}

// IsPhoneUnique is exposed for pre-validation without committing.
func (s *ClientService) IsPhoneUnique(ctx context.Context, phone string, excludeID int64) (bool, error) {
	if strings.TrimSpace(phone) == "" {
		return false, domain.Validationf("phone number cannot be empty")
	}
	return s.clientRepo.IsPhoneUnique(ctx, phone, excludeID)
}

func validateClient(client *domain.Client) error {
	if client == nil {
		return domain.Validationf("client cannot be nil")
	}
	if strings.TrimSpace(client.FirstName) == "" {
		return domain.Validationf("first name cannot be empty")
	}
	if strings.TrimSpace(client.LastName) == "" {
		return domain.Validationf("last name cannot be empty")
	}
	if strings.TrimSpace(client.Phone) == "" {
		return domain.Validationf("phone number cannot be empty")
	}
	if client.MembershipID <= 0 {
		return domain.Validationf("a valid membership id is required")
	}
	if client.BirthDate != nil && client.BirthDate.After(time.Now()) {
		return domain.Validationf("birth date cannot be in the future")
	}
	return nil
}
