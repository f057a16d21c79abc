package services

import (
	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
)

type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(userID, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(userID, limit, offset)
}

func (s *NotificationService) UnreadCount(userID int) (int, error) {
	return s.repo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id int64, userID int) error {
	return s.repo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID int) error {
	return s.repo.MarkAllRead(userID)
}
