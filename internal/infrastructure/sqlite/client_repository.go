package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, phone, email, birth_date, join_date, membership_id, health_info)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Phone,
		NullString(client.Email),
		NullTime(client.BirthDate),
		client.JoinDate,
		client.MembershipID,
		NullString(client.HealthInfo),
	)
	if err != nil {
		return domain.Persistence("failed to create client", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Persistence("failed to get last insert id", err)
	}
	client.ID = id

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, birth_date, join_date, membership_id, health_info
		FROM clients
		WHERE id = ?
	`
	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("failed to find client", err)
	}
	return client, nil
}

// Update never touches join_date; it is fixed at registration.
func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET first_name = ?, last_name = ?, phone = ?, email = ?, birth_date = ?, membership_id = ?, health_info = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Phone,
		NullString(client.Email),
		NullTime(client.BirthDate),
		client.MembershipID,
		NullString(client.HealthInfo),
		client.ID,
	)
	if err != nil {
		return domain.Persistence("failed to update client", err)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.Persistence("failed to delete client", err)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, birth_date, join_date, membership_id, health_info
		FROM clients
		ORDER BY last_name, first_name
	`
	return r.queryClients(ctx, query)
}

func (r *clientRepository) SearchByName(ctx context.Context, term string) ([]*domain.Client, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, birth_date, join_date, membership_id, health_info
		FROM clients
		WHERE lower(first_name) LIKE ? OR lower(last_name) LIKE ?
		ORDER BY last_name, first_name
	`
	pattern := "%" + strings.ToLower(term) + "%"
	return r.queryClients(ctx, query, pattern, pattern)
}

func (r *clientRepository) IsPhoneUnique(ctx context.Context, phone string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM clients WHERE phone = ?`
	args := []interface{}{phone}

	if excludeID > 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, domain.Persistence("failed to check phone uniqueness", err)
	}
	return count == 0, nil
}

func (r *clientRepository) queryClients(ctx context.Context, query string, args ...interface{}) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("failed to query clients", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, domain.Persistence("failed to scan client", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("error iterating clients", err)
	}

	return clients, nil
}

func scanClient(s scanner) (*domain.Client, error) {
	var client domain.Client
	var email, healthInfo sql.NullString
	var birthDate sql.NullTime

	err := s.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Phone,
		&email,
		&birthDate,
		&client.JoinDate,
		&client.MembershipID,
		&healthInfo,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		client.Email = &email.String
	}
	if birthDate.Valid {
		bd := birthDate.Time
		client.BirthDate = &bd
	}
	if healthInfo.Valid {
		client.HealthInfo = &healthInfo.String
	}

	return &client, nil
}
