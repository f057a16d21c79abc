package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"churchconnect/internal/models"
)

type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id int64) (*models.Booking, error)
	// ActiveByChurchAndDate returns bookings sharing (church, date) whose
	// status is still active (requested/reviewed/approved).
	ActiveByChurchAndDate(churchID int64, date time.Time) ([]models.Booking, error)
	UpdateStatus(id int64, to models.BookingStatus) error
	List(filter models.BookingFilter) ([]models.Booking, error)
	CountByStatus() (map[models.BookingStatus]int, error)
}

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{DB: db}
}

const bookingColumns = `
	id, ref_code, church_id, service_id, user_id, date, status, note, created_at, updated_at
`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.RefCode, &b.ChurchID, &b.ServiceID, &b.UserID,
		&b.Date, &b.Status, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(b *models.Booking) error {
	const q = `
		INSERT INTO bookings (ref_code, church_id, service_id, user_id, date, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		b.RefCode, b.ChurchID, b.ServiceID, b.UserID, b.Date, b.Status, b.Note,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("booking create: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(id int64) (*models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("booking get: %w", err)
	}
	return b, nil
}

func (r *bookingRepository) ActiveByChurchAndDate(churchID int64, date time.Time) ([]models.Booking, error) {
	statuses := make([]string, 0, len(models.ActiveBookingStatuses))
	for _, s := range models.ActiveBookingStatuses {
		statuses = append(statuses, string(s))
	}
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE church_id = $1 AND date = $2 AND status = ANY($3)
		ORDER BY created_at
	`
	rows, err := r.DB.Query(q, churchID, date, pq.Array(statuses))
	if err != nil {
		return nil, fmt.Errorf("booking active by date: %w", err)
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("booking active by date scan: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *bookingRepository) UpdateStatus(id int64, to models.BookingStatus) error {
	_, err := r.DB.Exec(`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, to)
	return err
}

func (r *bookingRepository) List(filter models.BookingFilter) ([]models.Booking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = 0 OR church_id = $1)
		  AND ($2 = 0 OR user_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY date DESC, id DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.DB.Query(q, filter.ChurchID, filter.UserID, string(filter.Status), limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("booking list: %w", err)
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("booking list scan: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *bookingRepository) CountByStatus() (map[models.BookingStatus]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("booking count by status: %w", err)
	}
	defer rows.Close()

	counts := map[models.BookingStatus]int{}
	for rows.Next() {
		var s string
		var c int
		if err := rows.Scan(&s, &c); err != nil {
			return nil, fmt.Errorf("booking count scan: %w", err)
		}
		counts[models.BookingStatus(s)] = c
	}
	return counts, rows.Err()
}
