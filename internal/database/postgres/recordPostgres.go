package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dklimov443/carminder/internal/entity"
)

type recordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) RecordRepository {
	return &recordRepository{db: db}
}

const recordColumns = `id, car_id, user_id, type, expiry_date, cost, liters, price_per_liter, notified, created_at, updated_at`

func scanRecord(row interface{ Scan(...interface{}) error }) (*entity.ServiceRecord, error) {
	var rec entity.ServiceRecord
	err := row.Scan(
		&rec.ID,
		&rec.CarID,
		&rec.UserID,
		&rec.Type,
		&rec.ExpiryDate,
		&rec.Cost,
		&rec.Liters,
		&rec.PricePerLiter,
		&rec.Notified,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepository) Create(ctx context.Context, rec *entity.ServiceRecord) error {
	query := `
		INSERT INTO service_records (
			car_id, user_id, type, expiry_date, cost,
			liters, price_per_liter, notified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		rec.CarID,
		rec.UserID,
		rec.Type,
		rec.ExpiryDate,
		rec.Cost,
		rec.Liters,
		rec.PricePerLiter,
		false,
		now,
		now,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("failed to create service record: %w", err)
	}

	rec.Notified = false
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

func (r *recordRepository) GetByID(ctx context.Context, id int64) (*entity.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service record: %w", err)
	}

	return rec, nil
}

// Update writes the mutable fields of a record. When resetNotified is set
// the notified flag is cleared in the same statement, so a changed expiry
// date and its re-arm land atomically.
func (r *recordRepository) Update(ctx context.Context, rec *entity.ServiceRecord, resetNotified bool) error {
	query := `
		UPDATE service_records
		SET type = $1, expiry_date = $2, cost = $3, liters = $4, price_per_liter = $5,
		    notified = CASE WHEN $6 THEN false ELSE notified END, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Type,
		rec.ExpiryDate,
		rec.Cost,
		rec.Liters,
		rec.PricePerLiter,
		resetNotified,
		time.Now(),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRecordNotFound
	}

	if resetNotified {
		rec.Notified = false
	}
	return nil
}

func (r *recordRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM service_records WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRecordNotFound
	}

	return nil
}

func (r *recordRepository) GetByCarID(ctx context.Context, carID int64) ([]*entity.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE car_id = $1 ORDER BY expiry_date ASC`
	return r.queryRecords(ctx, query, carID)
}

func (r *recordRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE user_id = $1 ORDER BY expiry_date ASC`
	return r.queryRecords(ctx, query, userID)
}

// ListUnsent is the single bulk read each reminder sweep performs: every
// record whose notification has not gone out yet, regardless of type or
// date. Eligibility is decided in memory by the sweep.
func (r *recordRepository) ListUnsent(ctx context.Context) ([]*entity.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE notified = false`
	return r.queryRecords(ctx, query)
}

// MarkNotified flips the notified flag for exactly one record. Writing
// true over true is a no-op, which keeps the sweep idempotent under
// overlapping runs.
func (r *recordRepository) MarkNotified(ctx context.Context, id int64) error {
	query := `UPDATE service_records SET notified = true, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark record notified: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRecordNotFound
	}

	return nil
}

func (r *recordRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*entity.ServiceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query service records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ServiceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service records: %w", err)
	}

	return records, nil
}
