package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"churchconnect/internal/config"
)

// EmailService is the SMTP implementation of the Notifier port. One primary
// dialer, at most one fallback attempt on a secondary server, no retries
// beyond that.
type EmailService struct {
	primary  *gomail.Dialer
	fallback *gomail.Dialer // nil when not configured
	from     string
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	s := &EmailService{
		primary: gomail.NewDialer(cfg.Primary.Host, cfg.Primary.Port, cfg.Primary.User, cfg.Primary.Password),
		from:    cfg.FromEmail,
	}
	if cfg.FromName != "" {
		s.from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}
	if cfg.Fallback.Host != "" {
		s.fallback = gomail.NewDialer(cfg.Fallback.Host, cfg.Fallback.Port, cfg.Fallback.User, cfg.Fallback.Password)
	}
	return s
}

func (s *EmailService) Send(to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	err := s.primary.DialAndSend(m)
	if err == nil {
		return nil
	}
	if s.fallback == nil {
		return fmt.Errorf("send email: %w", err)
	}

	log.Printf("[email] primary transport failed (%v), trying fallback", err)
	if err := s.fallback.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via fallback: %w", err)
	}
	return nil
}
