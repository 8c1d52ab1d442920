package repository

import (
	"context"

	"github.com/martijn/fitclub/internal/core/domain"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	FindByID(ctx context.Context, id int64) (*domain.Membership, error)

	// FindByType matches the type case-insensitively; (nil, nil) when absent.
	FindByType(ctx context.Context, membershipType string) (*domain.Membership, error)

	Update(ctx context.Context, membership *domain.Membership) error

	// Deactivate clears the active flag. The row is kept so existing clients
	// and assignments keep resolving.
	Deactivate(ctx context.Context, id int64) error

	List(ctx context.Context) ([]*domain.Membership, error)
	ListActive(ctx context.Context) ([]*domain.Membership, error)

	// IsTypeUnique reports whether no other membership uses the type,
	// compared case-insensitively. A non-zero excludeID is left out.
	IsTypeUnique(ctx context.Context, membershipType string, excludeID int64) (bool, error)
}
