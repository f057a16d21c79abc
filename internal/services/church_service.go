package services

import (
	"fmt"
	"time"

	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
)

type ChurchService struct {
	churches     *repositories.ChurchRepository
	services     *repositories.ServiceRepository
	availability *repositories.AvailabilityRepository
}

func NewChurchService(
	churches *repositories.ChurchRepository,
	services *repositories.ServiceRepository,
	availability *repositories.AvailabilityRepository,
) *ChurchService {
	return &ChurchService{churches: churches, services: services, availability: availability}
}

func (s *ChurchService) Create(ch *models.Church) error {
	if ch.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.churches.Create(ch)
}

func (s *ChurchService) GetByID(id int64) (*models.Church, error) {
	return s.churches.GetByID(id)
}

func (s *ChurchService) Update(ch *models.Church) error {
	return s.churches.Update(ch)
}

func (s *ChurchService) List(cityCode string, limit, offset int) ([]models.Church, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.churches.List(cityCode, limit, offset)
}

func (s *ChurchService) ListByOwner(ownerID int) ([]models.Church, error) {
	return s.churches.ListByOwner(ownerID)
}

// OwnedBy reports whether the user manages the church.
func (s *ChurchService) OwnedBy(churchID int64, userID int) (bool, error) {
	ch, err := s.churches.GetByID(churchID)
	if err != nil {
		return false, err
	}
	return ch != nil && ch.OwnerID == userID, nil
}

func (s *ChurchService) CreateService(svc *models.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if svc.AdvanceBookingDays <= 0 {
		svc.AdvanceBookingDays = 90
	}
	return s.services.Create(svc)
}

func (s *ChurchService) GetService(id int64) (*models.Service, error) {
	return s.services.GetByID(id)
}

func (s *ChurchService) UpdateService(svc *models.Service) error {
	return s.services.Update(svc)
}

func (s *ChurchService) ListServices(churchID int64) ([]models.Service, error) {
	return s.services.ListByChurch(churchID)
}

func (s *ChurchService) DeleteService(id int64) error {
	return s.services.Delete(id)
}

func (s *ChurchService) SetClosure(a *models.Availability) error {
	return s.availability.Upsert(a)
}

func (s *ChurchService) ListClosures(churchID int64, from, to string) ([]models.Availability, error) {
	fromT, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toT, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	return s.availability.ListByChurch(churchID, fromT, toT)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
