package models

import "time"

type VerificationChannel string

const (
	ChannelEmailVerification VerificationChannel = "email_verification"
	ChannelPasswordReset     VerificationChannel = "password_reset"
	ChannelLoginCode         VerificationChannel = "login_code"
)

// VerificationCode — one row per issued one-time code. Every send creates a
// new row; validation mutates attempts and, on success, is_used.
type VerificationCode struct {
	ID        int64               `json:"id"`
	Channel   VerificationChannel `json:"channel"`
	Recipient string              `json:"recipient"`
	Code      string              `json:"-"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
	IsUsed    bool                `json:"is_used"`
	Attempts  int                 `json:"attempts"`
}

// IsValid reports whether the code can still be accepted: unused, not past
// expiry, and under the attempt ceiling.
func (v *VerificationCode) IsValid(now time.Time, maxAttempts int) bool {
	return !v.IsUsed && now.Before(v.ExpiresAt) && v.Attempts < maxAttempts
}
