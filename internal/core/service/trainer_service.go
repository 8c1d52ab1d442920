package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

type TrainerService struct {
	trainerRepo repository.TrainerRepository
	log         zerolog.Logger
}

func NewTrainerService(trainerRepo repository.TrainerRepository, log zerolog.Logger) *TrainerService {
	return &TrainerService{
		trainerRepo: trainerRepo,
		log:         log.With().Str("component", "trainer_service").Logger(),
	}
}

func (s *TrainerService) Create(ctx context.Context, trainer *domain.Trainer) (int64, error) {
	if err := validateTrainer(trainer); err != nil {
		return 0, err
	}

	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return 0, err
	}

	s.log.Info().Int64("trainer_id", trainer.ID).Str("name", trainer.FullName()).Msg("trainer created")
	return trainer.ID, nil
}

func (s *TrainerService) Update(ctx context.Context, trainer *domain.Trainer) error {
	if err := validateTrainer(trainer); err != nil {
		return err
	}

	existing, err := s.trainerRepo.FindByID(ctx, trainer.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFoundf("trainer with id %d not found", trainer.ID)
	}

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return err
	}

	s.log.Info().Int64("trainer_id", trainer.ID).Msg("trainer updated")
	return nil
}

func (s *TrainerService) Delete(ctx context.Context, id int64) error {
	trainer, err := s.trainerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if trainer == nil {
		return domain.NotFoundf("trainer with id %d not found", id)
	}

	if err := s.trainerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("trainer_id", id).Msg("trainer deleted")
	return nil
}

func (s *TrainerService) Get(ctx context.Context, id int64) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, domain.NotFoundf("trainer with id %d not found", id)
	}
	return trainer, nil
}

func (s *TrainerService) List(ctx context.Context) ([]*domain.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

func validateTrainer(trainer *domain.Trainer) error {
	if trainer == nil {
		return domain.Validationf("trainer cannot be nil")
	}
	if strings.TrimSpace(trainer.FirstName) == "" {
		return domain.Validationf("first name cannot be empty")
	}
	if strings.TrimSpace(trainer.LastName) == "" {
		return domain.Validationf("last name cannot be empty")
	}
	if trainer.Salary < 0 {
		return domain.Validationf("salary cannot be negative")
	}
	if trainer.HireDate.After(time.Now()) {
		return domain.Validationf("hire date cannot be in the future")
	}
	return nil
}
