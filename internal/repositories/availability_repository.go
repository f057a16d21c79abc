package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"churchconnect/internal/models"
)

type AvailabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

func (r *AvailabilityRepository) Upsert(a *models.Availability) error {
	const q = `
		INSERT INTO availabilities (church_id, date, is_closed, reason)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (church_id, date)
		DO UPDATE SET is_closed = EXCLUDED.is_closed, reason = EXCLUDED.reason
		RETURNING id
	`
	if err := r.DB.QueryRow(q, a.ChurchID, a.Date, a.IsClosed, a.Reason).Scan(&a.ID); err != nil {
		return fmt.Errorf("availability upsert: %w", err)
	}
	return nil
}

// GetForDate returns the closure row for a church and date, or nil.
func (r *AvailabilityRepository) GetForDate(churchID int64, date time.Time) (*models.Availability, error) {
	const q = `
		SELECT id, church_id, date, is_closed, reason
		FROM availabilities
		WHERE church_id = $1 AND date = $2
	`
	var a models.Availability
	if err := r.DB.QueryRow(q, churchID, date).Scan(&a.ID, &a.ChurchID, &a.Date, &a.IsClosed, &a.Reason); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("availability get: %w", err)
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListByChurch(churchID int64, from, to time.Time) ([]models.Availability, error) {
	const q = `
		SELECT id, church_id, date, is_closed, reason
		FROM availabilities
		WHERE church_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`
	rows, err := r.DB.Query(q, churchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("availability list: %w", err)
	}
	defer rows.Close()

	var out []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.ID, &a.ChurchID, &a.Date, &a.IsClosed, &a.Reason); err != nil {
			return nil, fmt.Errorf("availability list scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
