package repositories

import (
	"database/sql"
	"fmt"

	"churchconnect/internal/models"
)

type FollowRepository struct {
	DB *sql.DB
}

func NewFollowRepository(db *sql.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

func (r *FollowRepository) Follow(userID int, churchID int64) error {
	_, err := r.DB.Exec(
		`INSERT INTO follows (user_id, church_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, churchID,
	)
	return err
}

func (r *FollowRepository) Unfollow(userID int, churchID int64) error {
	_, err := r.DB.Exec(`DELETE FROM follows WHERE user_id = $1 AND church_id = $2`, userID, churchID)
	return err
}

func (r *FollowRepository) IsFollowing(userID int, churchID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND church_id = $2)`,
		userID, churchID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("follow check: %w", err)
	}
	return exists, nil
}

func (r *FollowRepository) ListFollowed(userID int) ([]models.Church, error) {
	const q = `
		SELECT ` + churchColumns + `
		FROM churches
		WHERE id IN (SELECT church_id FROM follows WHERE user_id = $1)
		ORDER BY name
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("followed churches: %w", err)
	}
	defer rows.Close()

	var out []models.Church
	for rows.Next() {
		ch, err := scanChurch(rows)
		if err != nil {
			return nil, fmt.Errorf("followed churches scan: %w", err)
		}
		out = append(out, *ch)
	}
	return out, rows.Err()
}

func (r *FollowRepository) FollowerCount(churchID int64) (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM follows WHERE church_id = $1`, churchID).Scan(&c); err != nil {
		return 0, fmt.Errorf("follower count: %w", err)
	}
	return c, nil
}
