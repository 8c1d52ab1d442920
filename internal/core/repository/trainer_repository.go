package repository

import (
	"context"

	"github.com/martijn/fitclub/internal/core/domain"
)

type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) error
	FindByID(ctx context.Context, id int64) (*domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Trainer, error)
}
