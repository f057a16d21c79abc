package repositories

import (
	"database/sql"
	"fmt"

	"churchconnect/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

const serviceColumns = `
	id, church_id, name, description, duration_minutes, advance_booking_days,
	is_active, created_at, updated_at
`

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	var s models.Service
	err := row.Scan(
		&s.ID, &s.ChurchID, &s.Name, &s.Description, &s.DurationMinutes,
		&s.AdvanceBookingDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) Create(s *models.Service) error {
	const q = `
		INSERT INTO services (church_id, name, description, duration_minutes, advance_booking_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		s.ChurchID, s.Name, s.Description, s.DurationMinutes, s.AdvanceBookingDays,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("service create: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(id int64) (*models.Service, error) {
	s, err := scanService(r.DB.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("service get: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) Update(s *models.Service) error {
	const q = `
		UPDATE services SET
			name = $2, description = $3, duration_minutes = $4,
			advance_booking_days = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, s.ID, s.Name, s.Description, s.DurationMinutes, s.AdvanceBookingDays, s.IsActive)
	if err != nil {
		return fmt.Errorf("service update: %w", err)
	}
	return nil
}

func (r *ServiceRepository) ListByChurch(churchID int64) ([]models.Service, error) {
	rows, err := r.DB.Query(
		`SELECT `+serviceColumns+` FROM services WHERE church_id = $1 AND is_active = TRUE ORDER BY name`,
		churchID,
	)
	if err != nil {
		return nil, fmt.Errorf("service list: %w", err)
	}
	defer rows.Close()

	var out []models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("service list scan: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}
