package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
	"churchconnect/internal/utils"
)

// ErrDeliveryFailed means the code row was rolled back because neither mail
// transport reached the recipient.
var ErrDeliveryFailed = errors.New("delivery failed")

const (
	codeLength         = 6
	codeTTL            = 15 * time.Minute
	maxConfirmAttempts = 5
	staleAfter         = time.Hour

	// issuance cooldowns per channel; the login cooldown is deliberately
	// longer — it is the endpoint an attacker can spam against any email.
	emailVerificationCooldown = 30 * time.Second
	passwordResetCooldown     = 30 * time.Second
	loginCodeCooldown         = 2 * time.Minute
)

// Notifier delivers a rendered message to a recipient. Best-effort: a false
// outcome means neither the primary nor the fallback transport reached the
// recipient.
type Notifier interface {
	Send(to, subject, htmlBody, textBody string) error
}

// CodeTemplate renders the outgoing message for a freshly issued code.
type CodeTemplate func(code string) (subject, htmlBody, textBody string)

// VerificationService issues and validates one-time codes for a single
// channel. The same implementation backs signup email verification, password
// reset and passwordless login; only the channel identity, cooldown and
// message template differ.
//
// NOTE: attempt counting is asymmetric on purpose (it mirrors the shipped
// behavior): only a submission that matches an outstanding (recipient, code)
// row increments that row's attempts — arbitrary wrong guesses touch nothing.
// A per-recipient counter would close blind guessing of the 6-digit space;
// changing that is a hardening decision, not a bug fix, so it is left as is.
type VerificationService struct {
	Channel  models.VerificationChannel
	Cooldown time.Duration

	repo     repositories.VerificationCodeRepository
	notifier Notifier
	template CodeTemplate

	Clock    utils.Clock
	Generate func(n int) (string, error)
}

func NewVerificationService(
	channel models.VerificationChannel,
	cooldown time.Duration,
	repo repositories.VerificationCodeRepository,
	notifier Notifier,
	template CodeTemplate,
) *VerificationService {
	return &VerificationService{
		Channel:  channel,
		Cooldown: cooldown,
		repo:     repo,
		notifier: notifier,
		template: template,
		Clock:    utils.SystemClock{},
		Generate: utils.RandomDigits,
	}
}

// Channel constructors keep the per-channel numbers in one place.

func NewEmailVerificationService(repo repositories.VerificationCodeRepository, n Notifier) *VerificationService {
	return NewVerificationService(models.ChannelEmailVerification, emailVerificationCooldown, repo, n, emailVerificationTemplate)
}

func NewPasswordResetCodeService(repo repositories.VerificationCodeRepository, n Notifier) *VerificationService {
	return NewVerificationService(models.ChannelPasswordReset, passwordResetCooldown, repo, n, passwordResetTemplate)
}

func NewLoginCodeService(repo repositories.VerificationCodeRepository, n Notifier) *VerificationService {
	return NewVerificationService(models.ChannelLoginCode, loginCodeCooldown, repo, n, loginCodeTemplate)
}

// HasRecent is the advisory issuance guard: true when a code was created for
// the recipient within the channel cooldown. Callers check it before Issue;
// Issue itself does not enforce it.
func (s *VerificationService) HasRecent(recipient string) (bool, error) {
	return s.repo.HasRecent(s.Channel, recipient, s.Clock.Now().Add(-s.Cooldown))
}

// Issue creates, stores and delivers a fresh code. If delivery fails on both
// transports the stored row is removed again so no valid code exists that the
// user never received.
func (s *VerificationService) Issue(recipient string) (*models.VerificationCode, error) {
	now := s.Clock.Now()

	// opportunistic cleanup of stale rows for this recipient
	if err := s.repo.DeleteOlderThan(s.Channel, recipient, now.Add(-staleAfter)); err != nil {
		log.Printf("[verify][%s] cleanup failed for %s: %v", s.Channel, recipient, err)
	}

	code, err := s.Generate(codeLength)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	rec := &models.VerificationCode{
		Channel:   s.Channel,
		Recipient: recipient,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(codeTTL),
	}
	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}

	subject, htmlBody, textBody := s.template(code)
	if err := s.notifier.Send(recipient, subject, htmlBody, textBody); err != nil {
		log.Printf("[verify][%s] delivery to %s failed: %v", s.Channel, recipient, err)
		if delErr := s.repo.Delete(rec.ID); delErr != nil {
			log.Printf("[verify][%s] rollback of code %d failed: %v", s.Channel, rec.ID, delErr)
		}
		return nil, ErrDeliveryFailed
	}

	return rec, nil
}

// Validate checks a submitted code. A submission matching no outstanding row
// returns false with no side effect; a matching row gets its attempt counted
// and is marked used iff still valid — atomically, in one store operation.
func (s *VerificationService) Validate(recipient, submitted string) (bool, error) {
	rec, err := s.repo.LatestUnused(s.Channel, recipient, submitted)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	return s.repo.Consume(rec.ID, s.Clock.Now(), maxConfirmAttempts)
}

// --- message templates ---

func emailVerificationTemplate(code string) (string, string, string) {
	subject := "Verify your email"
	html := fmt.Sprintf(`
		<h3>Welcome!</h3>
		<p>Your verification code is <strong>%s</strong>.</p>
		<p>It is valid for 15 minutes. If you did not sign up, you can ignore this email.</p>
	`, code)
	text := fmt.Sprintf("Your verification code is %s. It is valid for 15 minutes.", code)
	return subject, html, text
}

func passwordResetTemplate(code string) (string, string, string) {
	subject := "Password reset code"
	html := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Use code <strong>%s</strong> to reset your password.</p>
		<p>It is valid for 15 minutes. If you did not request this, you can ignore this email.</p>
	`, code)
	text := fmt.Sprintf("Use code %s to reset your password. It is valid for 15 minutes.", code)
	return subject, html, text
}

func loginCodeTemplate(code string) (string, string, string) {
	subject := "Your login code"
	html := fmt.Sprintf(`
		<h3>Sign in</h3>
		<p>Your one-time login code is <strong>%s</strong>.</p>
		<p>It is valid for 15 minutes.</p>
	`, code)
	text := fmt.Sprintf("Your one-time login code is %s. It is valid for 15 minutes.", code)
	return subject, html, text
}
