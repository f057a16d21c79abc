package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
	"churchconnect/internal/utils"
)

var (
	ErrDateInPast        = errors.New("date is in the past")
	ErrDateTooFar        = errors.New("date is beyond the advance booking window")
	ErrDateClosed        = errors.New("church is closed on that date")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBookingNotFound   = errors.New("booking not found")
)

// AvailabilityStore is the slice of the availability repository the booking
// service needs for date checks.
type AvailabilityStore interface {
	GetForDate(churchID int64, date time.Time) (*models.Availability, error)
}

// ServiceStore resolves the bookable service for its advance-booking window.
type ServiceStore interface {
	GetByID(id int64) (*models.Service, error)
}

// AdminAlerter is notified (best-effort) when a new booking request lands.
type AdminAlerter interface {
	BookingRequested(b *models.Booking) error
}

type BookingService interface {
	// Create validates the requested date, stores the booking as requested
	// and returns it together with the already-active bookings sharing the
	// same (church, date). A non-empty conflict set is a warning for staff,
	// never a rejection.
	Create(b *models.Booking) (*models.Booking, []models.Booking, error)
	GetByID(id int64) (*models.Booking, error)
	List(filter models.BookingFilter) ([]models.Booking, error)
	// Conflicts returns the active bookings for (church, date).
	Conflicts(churchID int64, date time.Time) ([]models.Booking, error)
	UpdateStatus(id int64, to models.BookingStatus) (*models.Booking, error)
}

type bookingService struct {
	repo          repositories.BookingRepository
	services      ServiceStore
	availability  AvailabilityStore
	notifications repositories.NotificationRepository
	alerter       AdminAlerter // may be nil
	clock         utils.Clock
}

func NewBookingService(
	repo repositories.BookingRepository,
	services ServiceStore,
	availability AvailabilityStore,
	notifications repositories.NotificationRepository,
	alerter AdminAlerter,
) BookingService {
	return &bookingService{
		repo:          repo,
		services:      services,
		availability:  availability,
		notifications: notifications,
		alerter:       alerter,
		clock:         utils.SystemClock{},
	}
}

// NewBookingServiceWithClock exists for tests.
func NewBookingServiceWithClock(
	repo repositories.BookingRepository,
	services ServiceStore,
	availability AvailabilityStore,
	notifications repositories.NotificationRepository,
	alerter AdminAlerter,
	clock utils.Clock,
) BookingService {
	s := NewBookingService(repo, services, availability, notifications, alerter).(*bookingService)
	s.clock = clock
	return s
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) Create(b *models.Booking) (*models.Booking, []models.Booking, error) {
	svc, err := s.services.GetByID(b.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	if svc == nil || !svc.IsActive {
		return nil, nil, fmt.Errorf("service %d not found", b.ServiceID)
	}
	b.ChurchID = svc.ChurchID

	// date preconditions, evaluated once at submission
	today := truncateToDate(s.clock.Now())
	date := truncateToDate(b.Date)
	if date.Before(today) {
		return nil, nil, ErrDateInPast
	}
	if svc.AdvanceBookingDays > 0 && date.After(today.AddDate(0, 0, svc.AdvanceBookingDays)) {
		return nil, nil, ErrDateTooFar
	}
	avail, err := s.availability.GetForDate(b.ChurchID, date)
	if err != nil {
		return nil, nil, err
	}
	if avail != nil && avail.IsClosed {
		return nil, nil, ErrDateClosed
	}

	// conflicts are collected before insert, so every returned row is an
	// "other" booking
	conflicts, err := s.repo.ActiveByChurchAndDate(b.ChurchID, date)
	if err != nil {
		return nil, nil, err
	}

	b.Date = date
	b.Status = models.BookingRequested
	b.RefCode = uuid.NewString()
	if err := s.repo.Create(b); err != nil {
		return nil, nil, err
	}

	if s.alerter != nil {
		if err := s.alerter.BookingRequested(b); err != nil {
			log.Printf("[booking] admin alert failed for %s: %v", b.RefCode, err)
		}
	}
	if len(conflicts) > 0 {
		log.Printf("[booking] date conflict warning: church=%d date=%s existing=%d",
			b.ChurchID, date.Format("2006-01-02"), len(conflicts))
	}

	return b, conflicts, nil
}

func (s *bookingService) GetByID(id int64) (*models.Booking, error) {
	return s.repo.GetByID(id)
}

func (s *bookingService) List(filter models.BookingFilter) ([]models.Booking, error) {
	return s.repo.List(filter)
}

func (s *bookingService) Conflicts(churchID int64, date time.Time) ([]models.Booking, error) {
	return s.repo.ActiveByChurchAndDate(churchID, truncateToDate(date))
}

func (s *bookingService) UpdateStatus(id int64, to models.BookingStatus) (*models.Booking, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !canTransition(b.Status, to, BookingTransitions) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	b.Status = to

	if s.notifications != nil {
		n := &models.Notification{
			UserID:  b.UserID,
			Type:    models.NotifyBookingStatus,
			Message: fmt.Sprintf("Your booking %s is now %s", b.RefCode, to),
		}
		if err := s.notifications.Create(n); err != nil {
			log.Printf("[booking] status notification failed for %s: %v", b.RefCode, err)
		}
	}
	return b, nil
}
