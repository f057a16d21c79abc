package services

import (
	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
)

type AdminSummary struct {
	Users            int                          `json:"users"`
	Churches         int                          `json:"churches"`
	Posts            int                          `json:"posts"`
	BookingsByStatus map[models.BookingStatus]int `json:"bookings_by_status"`
}

// AdminService backs the super-admin dashboard.
type AdminService struct {
	users    repositories.UserRepository
	churches *repositories.ChurchRepository
	bookings repositories.BookingRepository
	posts    *repositories.PostRepository
}

func NewAdminService(
	users repositories.UserRepository,
	churches *repositories.ChurchRepository,
	bookings repositories.BookingRepository,
	posts *repositories.PostRepository,
) *AdminService {
	return &AdminService{users: users, churches: churches, bookings: bookings, posts: posts}
}

func (s *AdminService) Summary() (*AdminSummary, error) {
	users, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	churches, err := s.churches.Count()
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.Count()
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountByStatus()
	if err != nil {
		return nil, err
	}
	return &AdminSummary{
		Users:            users,
		Churches:         churches,
		Posts:            posts,
		BookingsByStatus: bookings,
	}, nil
}

func (s *AdminService) ApproveChurch(id int64, approved bool) error {
	return s.churches.SetApproved(id, approved)
}

func (s *AdminService) DeactivateChurch(id int64) error {
	return s.churches.SetActive(id, false)
}
