package repository

import (
	"context"

	"github.com/martijn/fitclub/internal/core/domain"
)

// ClientRepository persists clients. Lookups return (nil, nil) for a missing
// row; only storage failures are returned as errors.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Client, error)

	// SearchByName matches term as a case-insensitive substring of the first
	// or last name, ordered by last name then first name.
	SearchByName(ctx context.Context, term string) ([]*domain.Client, error)

	// IsPhoneUnique reports whether no other client uses phone. A non-zero
	// excludeID leaves that client out of the check (for updates).
	IsPhoneUnique(ctx context.Context, phone string, excludeID int64) (bool, error)
}
