package services

import (
	"fmt"
	"strings"
	"time"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
	"churchconnect/internal/utils"
)

type UserService interface {
	Register(email, password, displayName string) (*models.User, error)
	// ProvisionOAuthUser returns the existing user for the email or creates a
	// verified one (no password login until a reset is done).
	ProvisionOAuthUser(email, displayName string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	MarkVerified(id int) error
	UpdateProfile(user *models.User) error
	UpdatePassword(id int, newPassword string) error
	ListUsers(limit, offset int) ([]*models.User, error)
	SetActive(id int, active bool) error
	SetRole(id, roleID int) error

	SaveRefreshToken(id int, token string, expiresAt time.Time) error
	GetByRefreshToken(token string) (*models.User, error)
	RevokeRefreshToken(id int) error
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(email, password, displayName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
		RoleID:       authz.RoleMember,
		IsVerified:   false,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ProvisionOAuthUser(email, displayName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// random password: the account is usable via OAuth only until the user
	// goes through a password reset
	secret, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, err
	}
	random, err := s.auth.HashPassword(secret)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: random,
		RoleID:       authz.RoleMember,
		IsVerified:   true, // the provider already verified the email
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *userService) MarkVerified(id int) error {
	return s.repo.MarkVerified(id)
}

func (s *userService) UpdateProfile(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) UpdatePassword(id int, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, hash)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) SetActive(id int, active bool) error {
	return s.repo.SetActive(id, active)
}

func (s *userService) SetRole(id, roleID int) error {
	switch roleID {
	case authz.RoleMember, authz.RoleStaff, authz.RoleSuperAdmin:
	default:
		return fmt.Errorf("unknown role %d", roleID)
	}
	return s.repo.SetRole(id, roleID)
}

func (s *userService) SaveRefreshToken(id int, token string, expiresAt time.Time) error {
	return s.repo.SaveRefreshToken(id, token, expiresAt)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}

func (s *userService) RevokeRefreshToken(id int) error {
	return s.repo.RevokeRefreshToken(id)
}
