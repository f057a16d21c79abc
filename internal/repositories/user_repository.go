package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"churchconnect/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(id int, passwordHash string) error
	MarkVerified(id int) error
	SetActive(id int, active bool) error
	SetRole(id, roleID int) error
	SaveRefreshToken(id int, token string, expiresAt time.Time) error
	GetByRefreshToken(token string) (*models.User, error)
	RevokeRefreshToken(id int) error
	List(limit, offset int) ([]*models.User, error)
	Count() (int, error)
	Delete(id int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, display_name, password_hash, role_id, is_verified, is_active,
	bio, avatar_path, phone,
	region_code, region_name, province_code, province_name,
	city_code, city_name, barangay_code, barangay_name,
	created_at, refresh_token, refresh_expires_at, refresh_revoked
`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var refreshToken sql.NullString
	var refreshExpires sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.RoleID, &u.IsVerified, &u.IsActive,
		&u.Bio, &u.AvatarPath, &u.Phone,
		&u.RegionCode, &u.RegionName, &u.ProvinceCode, &u.ProvinceName,
		&u.CityCode, &u.CityName, &u.BarangayCode, &u.BarangayName,
		&u.CreatedAt, &refreshToken, &refreshExpires, &u.RefreshRevoked,
	)
	if err != nil {
		return nil, err
	}
	if refreshToken.Valid {
		u.RefreshToken = &refreshToken.String
	}
	if refreshExpires.Valid {
		u.RefreshExpiresAt = &refreshExpires.Time
	}
	return &u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, display_name, password_hash, role_id, is_verified, is_active,
			bio, avatar_path, phone,
			region_code, region_name, province_code, province_name,
			city_code, city_name, barangay_code, barangay_name)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.Email, user.DisplayName, user.PasswordHash, user.RoleID, user.IsVerified,
		user.Bio, user.AvatarPath, user.Phone,
		user.RegionCode, user.RegionName, user.ProvinceCode, user.ProvinceName,
		user.CityCode, user.CityName, user.BarangayCode, user.BarangayName,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	user.IsActive = true
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users SET
			display_name = $2, bio = $3, avatar_path = $4, phone = $5,
			region_code = $6, region_name = $7, province_code = $8, province_name = $9,
			city_code = $10, city_name = $11, barangay_code = $12, barangay_name = $13
		WHERE id = $1
	`
	_, err := r.DB.Exec(q,
		user.ID, user.DisplayName, user.Bio, user.AvatarPath, user.Phone,
		user.RegionCode, user.RegionName, user.ProvinceCode, user.ProvinceName,
		user.CityCode, user.CityName, user.BarangayCode, user.BarangayName,
	)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	return err
}

func (r *userRepository) MarkVerified(id int) error {
	_, err := r.DB.Exec(`UPDATE users SET is_verified = TRUE WHERE id = $1`, id)
	return err
}

func (r *userRepository) SetActive(id int, active bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_active = $2 WHERE id = $1`, id, active)
	return err
}

func (r *userRepository) SetRole(id, roleID int) error {
	_, err := r.DB.Exec(`UPDATE users SET role_id = $2 WHERE id = $1`, id, roleID)
	return err
}

func (r *userRepository) SaveRefreshToken(id int, token string, expiresAt time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE users SET refresh_token = $2, refresh_expires_at = $3, refresh_revoked = FALSE WHERE id = $1`,
		id, token, expiresAt,
	)
	return err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by refresh token: %w", err)
	}
	return u, nil
}

func (r *userRepository) RevokeRefreshToken(id int) error {
	_, err := r.DB.Exec(`UPDATE users SET refresh_revoked = TRUE WHERE id = $1`, id)
	return err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	rows, err := r.DB.Query(`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Count() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c); err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return c, nil
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}
