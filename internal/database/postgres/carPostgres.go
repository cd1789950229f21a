package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dklimov443/carminder/internal/entity"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	query := `
		INSERT INTO cars (user_id, brand, model, year, plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		car.UserID,
		car.Brand,
		car.Model,
		car.Year,
		car.Plate,
		now,
		now,
	).Scan(&car.ID)

	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	car.CreatedAt = now
	car.UpdatedAt = now
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*entity.Car, error) {
	query := `
		SELECT id, user_id, brand, model, year, plate, created_at, updated_at
		FROM cars
		WHERE id = $1
	`

	var car entity.Car
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&car.ID,
		&car.UserID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.Plate,
		&car.CreatedAt,
		&car.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return &car, nil
}

func (r *carRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Car, error) {
	query := `
		SELECT id, user_id, brand, model, year, plate, created_at, updated_at
		FROM cars
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars by user: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		var car entity.Car
		err := rows.Scan(
			&car.ID,
			&car.UserID,
			&car.Brand,
			&car.Model,
			&car.Year,
			&car.Plate,
			&car.CreatedAt,
			&car.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, &car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	query := `
		UPDATE cars
		SET brand = $1, model = $2, year = $3, plate = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		car.Brand,
		car.Model,
		car.Year,
		car.Plate,
		time.Now(),
		car.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCarNotFound
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cars WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCarNotFound
	}

	return nil
}
