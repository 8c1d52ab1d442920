package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

const assignmentDetailSelect = `
	SELECT mm.id, mm.member_id, mm.membership_id, mm.start_date, mm.end_date,
		c.last_name || ' ' || c.first_name AS member_name,
		ms.type AS plan_type,
		ms.price AS plan_price
	FROM member_memberships mm
	JOIN clients c ON mm.member_id = c.id
	JOIN memberships ms ON mm.membership_id = ms.id
`

type assignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Assign checks for an existing active assignment and inserts the new row in
// one transaction, so two concurrent assigns for the same member cannot both
// pass the check.
func (r *assignmentRepository) Assign(ctx context.Context, memberID, membershipID int64, start, end time.Time) (*domain.Assignment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domain.Persistence("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var active int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM member_memberships WHERE member_id = ? AND end_date >= ?`,
		memberID, time.Now(),
	).Scan(&active)
	if err != nil {
		return nil, domain.Persistence("failed to check active assignments", err)
	}
	if active > 0 {
		return nil, repository.ErrActiveAssignment
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO member_memberships (member_id, membership_id, start_date, end_date) VALUES (?, ?, ?, ?)`,
		memberID, membershipID, start, end,
	)
	if err != nil {
		return nil, domain.Persistence("failed to create assignment", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, domain.Persistence("failed to get last insert id", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.Persistence("failed to commit assignment", err)
	}

	return &domain.Assignment{
		ID:           id,
		MemberID:     memberID,
		MembershipID: membershipID,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := `
		SELECT id, member_id, membership_id, start_date, end_date
		FROM member_memberships
		WHERE id = ?
	`
	var a domain.Assignment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.MemberID, &a.MembershipID, &a.StartDate, &a.EndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("failed to find assignment", err)
	}
	return &a, nil
}

func (r *assignmentRepository) FindByMember(ctx context.Context, memberID int64) ([]*domain.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE mm.member_id = ? ORDER BY mm.end_date DESC`
	return r.queryDetails(ctx, query, memberID)
}

func (r *assignmentRepository) CountActiveByMember(ctx context.Context, memberID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM member_memberships WHERE member_id = ? AND end_date >= ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, memberID, now).Scan(&count); err != nil {
		return 0, domain.Persistence("failed to count active assignments", err)
	}
	return count, nil
}

func (r *assignmentRepository) FindActive(ctx context.Context, now time.Time) ([]*domain.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE mm.end_date >= ? ORDER BY mm.end_date`
	return r.queryDetails(ctx, query, now)
}

func (r *assignmentRepository) FindExpired(ctx context.Context, now time.Time) ([]*domain.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE mm.end_date < ? ORDER BY mm.end_date`
	return r.queryDetails(ctx, query, now)
}

func (r *assignmentRepository) FindExpiring(ctx context.Context, from, to time.Time) ([]*domain.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE mm.end_date >= ? AND mm.end_date <= ? ORDER BY mm.end_date`
	return r.queryDetails(ctx, query, from, to)
}

func (r *assignmentRepository) SumPlanPrice(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(ms.price), 0)
		FROM member_memberships mm
		JOIN memberships ms ON mm.membership_id = ms.id
		WHERE mm.start_date >= ? AND mm.start_date <= ?
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total); err != nil {
		return 0, domain.Persistence("failed to sum plan prices", err)
	}
	return total, nil
}

func (r *assignmentRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]*domain.AssignmentDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("failed to query assignments", err)
	}
	defer rows.Close()

	var details []*domain.AssignmentDetail
	for rows.Next() {
		var d domain.AssignmentDetail
		err := rows.Scan(
			&d.ID, &d.MemberID, &d.MembershipID, &d.StartDate, &d.EndDate,
			&d.MemberName, &d.PlanType, &d.PlanPrice,
		)
		if err != nil {
			return nil, domain.Persistence("failed to scan assignment", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("error iterating assignments", err)
	}

	return details, nil
}
