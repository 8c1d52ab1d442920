package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

type membershipRepository struct {
	db *DB
}

func NewMembershipRepository(db *DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (type, duration_days, price, description, access_level, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		membership.Type,
		membership.DurationDays,
		membership.Price,
		NullString(membership.Description),
		membership.AccessLevel,
		membership.IsActive,
	)
	if err != nil {
		return domain.Persistence("failed to create membership", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Persistence("failed to get last insert id", err)
	}
	membership.ID = id

	return nil
}

func (r *membershipRepository) FindByID(ctx context.Context, id int64) (*domain.Membership, error) {
	query := `
		SELECT id, type, duration_days, price, description, access_level, is_active
		FROM memberships
		WHERE id = ?
	`
	membership, err := scanMembership(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("failed to find membership", err)
	}
	return membership, nil
}

func (r *membershipRepository) FindByType(ctx context.Context, membershipType string) (*domain.Membership, error) {
	// type is declared COLLATE NOCASE, so = compares case-insensitively
	query := `
		SELECT id, type, duration_days, price, description, access_level, is_active
		FROM memberships
		WHERE type = ?
		LIMIT 1
	`
	membership, err := scanMembership(r.db.QueryRowContext(ctx, query, membershipType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("failed to find membership by type", err)
	}
	return membership, nil
}

func (r *membershipRepository) Update(ctx context.Context, membership *domain.Membership) error {
	query := `
		UPDATE memberships
		SET type = ?, duration_days = ?, price = ?, description = ?, access_level = ?, is_active = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		membership.Type,
		membership.DurationDays,
		membership.Price,
		NullString(membership.Description),
		membership.AccessLevel,
		membership.IsActive,
		membership.ID,
	)
	if err != nil {
		return domain.Persistence("failed to update membership", err)
	}
	return nil
}

func (r *membershipRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE memberships SET is_active = 0 WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.Persistence("failed to deactivate membership", err)
	}
	return nil
}

func (r *membershipRepository) List(ctx context.Context) ([]*domain.Membership, error) {
	query := `
		SELECT id, type, duration_days, price, description, access_level, is_active
		FROM memberships
		ORDER BY id
	`
	return r.queryMemberships(ctx, query)
}

func (r *membershipRepository) ListActive(ctx context.Context) ([]*domain.Membership, error) {
	query := `
		SELECT id, type, duration_days, price, description, access_level, is_active
		FROM memberships
		WHERE is_active = 1
		ORDER BY price
	`
	return r.queryMemberships(ctx, query)
}

func (r *membershipRepository) IsTypeUnique(ctx context.Context, membershipType string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM memberships WHERE type = ?`
	args := []interface{}{membershipType}

	if excludeID > 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, domain.Persistence("failed to check type uniqueness", err)
	}
	return count == 0, nil
}

func (r *membershipRepository) queryMemberships(ctx context.Context, query string, args ...interface{}) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("failed to query memberships", err)
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, domain.Persistence("failed to scan membership", err)
		}
		memberships = append(memberships, membership)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("error iterating memberships", err)
	}

	return memberships, nil
}

func scanMembership(s scanner) (*domain.Membership, error) {
	var membership domain.Membership
	var description sql.NullString

	err := s.Scan(
		&membership.ID,
		&membership.Type,
		&membership.DurationDays,
		&membership.Price,
		&description,
		&membership.AccessLevel,
		&membership.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		membership.Description = &description.String
	}

	return &membership, nil
}
