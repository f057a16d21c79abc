package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"churchconnect/internal/models"
)

// VerificationCodeRepository is the store behind the one-time-code flows.
// One table serves all channels; rows are keyed by (channel, recipient).
type VerificationCodeRepository interface {
	Create(rec *models.VerificationCode) error
	// LatestUnused returns the most recently created unused row matching
	// (channel, recipient, code), or nil when none exists.
	LatestUnused(channel models.VerificationChannel, recipient, code string) (*models.VerificationCode, error)
	// Consume atomically counts a validation attempt against the row and
	// marks it used iff it is still valid (unused, unexpired, attempts under
	// the ceiling). Returns whether the code was accepted. The
	// increment+check+mark happens in a single conditional UPDATE, so two
	// concurrent validations can never both succeed.
	Consume(id int64, now time.Time, maxAttempts int) (bool, error)
	HasRecent(channel models.VerificationChannel, recipient string, since time.Time) (bool, error)
	// DeleteOlderThan drops the recipient's stale rows on a channel. Called
	// opportunistically at issuance; failure is non-fatal to the caller.
	DeleteOlderThan(channel models.VerificationChannel, recipient string, cutoff time.Time) error
	Delete(id int64) error
}

type verificationCodeRepository struct {
	DB *sql.DB
}

func NewVerificationCodeRepository(db *sql.DB) VerificationCodeRepository {
	return &verificationCodeRepository{DB: db}
}

func (r *verificationCodeRepository) Create(rec *models.VerificationCode) error {
	const q = `
		INSERT INTO verification_codes (channel, recipient, code, created_at, expires_at, is_used, attempts)
		VALUES ($1, $2, $3, $4, $5, FALSE, 0)
		RETURNING id
	`
	if err := r.DB.QueryRow(q, rec.Channel, rec.Recipient, rec.Code, rec.CreatedAt, rec.ExpiresAt).Scan(&rec.ID); err != nil {
		return fmt.Errorf("verification_code create: %w", err)
	}
	return nil
}

func (r *verificationCodeRepository) LatestUnused(channel models.VerificationChannel, recipient, code string) (*models.VerificationCode, error) {
	const q = `
		SELECT id, channel, recipient, code, created_at, expires_at, is_used, attempts
		FROM verification_codes
		WHERE channel = $1 AND recipient = $2 AND code = $3 AND is_used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, channel, recipient, code)
	var v models.VerificationCode
	if err := row.Scan(&v.ID, &v.Channel, &v.Recipient, &v.Code, &v.CreatedAt, &v.ExpiresAt, &v.IsUsed, &v.Attempts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("verification_code latest unused: %w", err)
	}
	return &v, nil
}

// Consume relies on attempts/expires_at in the SET clause reading the
// pre-update row, and on the row lock the UPDATE takes: a concurrent call
// re-evaluates is_used = FALSE after the first commits and matches nothing.
func (r *verificationCodeRepository) Consume(id int64, now time.Time, maxAttempts int) (bool, error) {
	const q = `
		UPDATE verification_codes
		SET attempts = attempts + 1,
		    is_used  = (attempts < $2 AND expires_at > $3)
		WHERE id = $1 AND is_used = FALSE
		RETURNING is_used
	`
	var accepted bool
	if err := r.DB.QueryRow(q, id, maxAttempts, now).Scan(&accepted); err != nil {
		if err == sql.ErrNoRows {
			// already used or deleted meanwhile
			return false, nil
		}
		return false, fmt.Errorf("verification_code consume: %w", err)
	}
	return accepted, nil
}

func (r *verificationCodeRepository) HasRecent(channel models.VerificationChannel, recipient string, since time.Time) (bool, error) {
	const q = `
		SELECT COUNT(*)
		FROM verification_codes
		WHERE channel = $1 AND recipient = $2 AND created_at >= $3
	`
	var c int
	if err := r.DB.QueryRow(q, channel, recipient, since).Scan(&c); err != nil {
		return false, fmt.Errorf("verification_code count recent: %w", err)
	}
	return c > 0, nil
}

func (r *verificationCodeRepository) DeleteOlderThan(channel models.VerificationChannel, recipient string, cutoff time.Time) error {
	_, err := r.DB.Exec(
		`DELETE FROM verification_codes WHERE channel = $1 AND recipient = $2 AND created_at < $3`,
		channel, recipient, cutoff,
	)
	return err
}

func (r *verificationCodeRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM verification_codes WHERE id = $1`, id)
	return err
}
