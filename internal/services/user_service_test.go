package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
)

type fakeUserRepo struct {
	nextID int
	byID   map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int]*models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	u.IsActive = true
	u.CreatedAt = time.Now()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	if cur, ok := r.byID[u.ID]; ok {
		cur.DisplayName = u.DisplayName
		cur.Bio = u.Bio
		cur.Phone = u.Phone
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id int, hash string) error {
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) MarkVerified(id int) error {
	if u, ok := r.byID[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (r *fakeUserRepo) SetRole(id, roleID int) error {
	if u, ok := r.byID[id]; ok {
		u.RoleID = roleID
	}
	return nil
}

func (r *fakeUserRepo) SetActive(id int, active bool) error {
	if u, ok := r.byID[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(id int, token string, expiresAt time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.RefreshToken = &token
		u.RefreshExpiresAt = &expiresAt
		u.RefreshRevoked = false
	}
	return nil
}

func (r *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	for _, u := range r.byID {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(id int) error {
	if u, ok := r.byID[id]; ok {
		u.RefreshRevoked = true
	}
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) { return nil, nil }
func (r *fakeUserRepo) Count() (int, error)                            { return len(r.byID), nil }
func (r *fakeUserRepo) Delete(id int) error                            { delete(r.byID, id); return nil }

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewUserService(repo, NewAuthService([]byte("test-secret"))), repo
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	u, err := svc.Register("  Maria@Example.COM ", "hunter22", "Maria")
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", u.Email)
	require.Equal(t, authz.RoleMember, u.RoleID)
	require.False(t, u.IsVerified)
	require.NotEqual(t, "hunter22", u.PasswordHash)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register("maria@example.com", "hunter22", "Maria")
	require.NoError(t, err)

	_, err = svc.Register("MARIA@example.com", "hunter22", "Maria Again")
	require.Error(t, err)
}

func TestProvisionOAuthUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	u, err := svc.ProvisionOAuthUser("maria@example.com", "Maria")
	require.NoError(t, err)
	require.True(t, u.IsVerified, "provider-verified email skips the code flow")

	// second provisioning returns the same account
	again, err := svc.ProvisionOAuthUser("maria@example.com", "Someone Else")
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
	require.Equal(t, "Maria", again.DisplayName)
}

func TestUpdatePasswordMinLength(t *testing.T) {
	svc, _ := newTestUserService(t)

	u, err := svc.Register("maria@example.com", "hunter22", "Maria")
	require.NoError(t, err)

	require.Error(t, svc.UpdatePassword(u.ID, "12345"))
	require.NoError(t, svc.UpdatePassword(u.ID, "123456"))
}

func TestSetRoleValidatesRole(t *testing.T) {
	svc, repo := newTestUserService(t)

	u, err := svc.Register("maria@example.com", "hunter22", "Maria")
	require.NoError(t, err)

	require.Error(t, svc.SetRole(u.ID, 99))
	require.NoError(t, svc.SetRole(u.ID, authz.RoleStaff))
	require.Equal(t, authz.RoleStaff, repo.byID[u.ID].RoleID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, repo := newTestUserService(t)

	u, err := svc.Register("maria@example.com", "hunter22", "Maria")
	require.NoError(t, err)

	exp := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, svc.SaveRefreshToken(u.ID, "tok-1", exp))

	found, err := svc.GetByRefreshToken("tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, u.ID, found.ID)

	require.NoError(t, svc.RevokeRefreshToken(u.ID))
	require.True(t, repo.byID[u.ID].RefreshRevoked)
}
