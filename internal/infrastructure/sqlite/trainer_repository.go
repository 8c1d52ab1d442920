package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/martijn/fitclub/internal/core/domain"
	"github.com/martijn/fitclub/internal/core/repository"
)

type trainerRepository struct {
	db *DB
}

func NewTrainerRepository(db *DB) repository.TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) Create(ctx context.Context, trainer *domain.Trainer) error {
	query := `
		INSERT INTO trainers (first_name, last_name, specialization, hire_date, salary, certification)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		trainer.FirstName,
		trainer.LastName,
		NullString(trainer.Specialization),
		trainer.HireDate,
		trainer.Salary,
		NullString(trainer.Certification),
	)
	if err != nil {
		return domain.Persistence("failed to create trainer", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Persistence("failed to get last insert id", err)
	}
	trainer.ID = id

	return nil
}

func (r *trainerRepository) FindByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	query := `
		SELECT id, first_name, last_name, specialization, hire_date, salary, certification
		FROM trainers
		WHERE id = ?
	`
	trainer, err := scanTrainer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("failed to find trainer", err)
	}
	return trainer, nil
}

func (r *trainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	query := `
		UPDATE trainers
		SET first_name = ?, last_name = ?, specialization = ?, hire_date = ?, salary = ?, certification = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		trainer.FirstName,
		trainer.LastName,
		NullString(trainer.Specialization),
		trainer.HireDate,
		trainer.Salary,
		NullString(trainer.Certification),
		trainer.ID,
	)
	if err != nil {
		return domain.Persistence("failed to update trainer", err)
	}
	return nil
}

func (r *trainerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM trainers WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.Persistence("failed to delete trainer", err)
	}
	return nil
}

func (r *trainerRepository) List(ctx context.Context) ([]*domain.Trainer, error) {
	query := `
		SELECT id, first_name, last_name, specialization, hire_date, salary, certification
		FROM trainers
		ORDER BY last_name, first_name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.Persistence("failed to query trainers", err)
	}
	defer rows.Close()

	var trainers []*domain.Trainer
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, domain.Persistence("failed to scan trainer", err)
		}
		trainers = append(trainers, trainer)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("error iterating trainers", err)
	}

	return trainers, nil
}

func scanTrainer(s scanner) (*domain.Trainer, error) {
	var trainer domain.Trainer
	var specialization, certification sql.NullString

	err := s.Scan(
		&trainer.ID,
		&trainer.FirstName,
		&trainer.LastName,
		&specialization,
		&trainer.HireDate,
		&trainer.Salary,
		&certification,
	)
	if err != nil {
		return nil, err
	}

	if specialization.Valid {
		trainer.Specialization = &specialization.String
	}
	if certification.Valid {
		trainer.Certification = &certification.String
	}

	return &trainer, nil
}
