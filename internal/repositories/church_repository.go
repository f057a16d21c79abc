package repositories

import (
	"database/sql"
	"fmt"

	"churchconnect/internal/models"
)

type ChurchRepository struct {
	DB *sql.DB
}

func NewChurchRepository(db *sql.DB) *ChurchRepository {
	return &ChurchRepository{DB: db}
}

const churchColumns = `
	id, name, description, address, region_code, city_code, cover_path,
	owner_id, is_approved, is_active, created_at, updated_at
`

func scanChurch(row interface{ Scan(...any) error }) (*models.Church, error) {
	var ch models.Church
	err := row.Scan(
		&ch.ID, &ch.Name, &ch.Description, &ch.Address, &ch.RegionCode, &ch.CityCode,
		&ch.CoverPath, &ch.OwnerID, &ch.IsApproved, &ch.IsActive, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChurchRepository) Create(ch *models.Church) error {
	const q = `
		INSERT INTO churches (name, description, address, region_code, city_code, cover_path, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_approved, is_active, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		ch.Name, ch.Description, ch.Address, ch.RegionCode, ch.CityCode, ch.CoverPath, ch.OwnerID,
	).Scan(&ch.ID, &ch.IsApproved, &ch.IsActive, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
		return fmt.Errorf("church create: %w", err)
	}
	return nil
}

func (r *ChurchRepository) GetByID(id int64) (*models.Church, error) {
	ch, err := scanChurch(r.DB.QueryRow(`SELECT `+churchColumns+` FROM churches WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("church get: %w", err)
	}
	return ch, nil
}

func (r *ChurchRepository) Update(ch *models.Church) error {
	const q = `
		UPDATE churches SET
			name = $2, description = $3, address = $4, region_code = $5,
			city_code = $6, cover_path = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, ch.ID, ch.Name, ch.Description, ch.Address, ch.RegionCode, ch.CityCode, ch.CoverPath)
	if err != nil {
		return fmt.Errorf("church update: %w", err)
	}
	return nil
}

func (r *ChurchRepository) SetApproved(id int64, approved bool) error {
	_, err := r.DB.Exec(`UPDATE churches SET is_approved = $2, updated_at = NOW() WHERE id = $1`, id, approved)
	return err
}

func (r *ChurchRepository) SetActive(id int64, active bool) error {
	_, err := r.DB.Exec(`UPDATE churches SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	return err
}

// List returns approved active churches, optionally narrowed to a city.
func (r *ChurchRepository) List(cityCode string, limit, offset int) ([]models.Church, error) {
	const q = `
		SELECT ` + churchColumns + `
		FROM churches
		WHERE is_approved = TRUE AND is_active = TRUE
		  AND ($1 = '' OR city_code = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, cityCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("church list: %w", err)
	}
	defer rows.Close()

	var out []models.Church
	for rows.Next() {
		ch, err := scanChurch(rows)
		if err != nil {
			return nil, fmt.Errorf("church list scan: %w", err)
		}
		out = append(out, *ch)
	}
	return out, rows.Err()
}

func (r *ChurchRepository) ListByOwner(ownerID int) ([]models.Church, error) {
	rows, err := r.DB.Query(`SELECT `+churchColumns+` FROM churches WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("church list by owner: %w", err)
	}
	defer rows.Close()

	var out []models.Church
	for rows.Next() {
		ch, err := scanChurch(rows)
		if err != nil {
			return nil, fmt.Errorf("church list by owner scan: %w", err)
		}
		out = append(out, *ch)
	}
	return out, rows.Err()
}

func (r *ChurchRepository) Count() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM churches`).Scan(&c); err != nil {
		return 0, fmt.Errorf("church count: %w", err)
	}
	return c, nil
}
