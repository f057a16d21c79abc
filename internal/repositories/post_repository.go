package repositories

import (
	"database/sql"
	"fmt"

	"churchconnect/internal/models"
)

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// post queries join like counts and the viewer's like/bookmark flags so the
// feed renders in one round trip.
const postSelect = `
	SELECT p.id, p.church_id, p.author_id, p.title, p.body, p.image_path,
	       p.created_at, p.updated_at,
	       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
	       EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked,
	       EXISTS (SELECT 1 FROM post_bookmarks b WHERE b.post_id = p.id AND b.user_id = $1) AS bookmarked
	FROM posts p
`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.ChurchID, &p.AuthorID, &p.Title, &p.Body, &p.ImagePath,
		&p.CreatedAt, &p.UpdatedAt, &p.LikeCount, &p.Liked, &p.Bookmarked,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(p *models.Post) error {
	const q = `
		INSERT INTO posts (church_id, author_id, title, body, image_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q, p.ChurchID, p.AuthorID, p.Title, p.Body, p.ImagePath).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("post create: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(viewerID int, id int64) (*models.Post, error) {
	p, err := scanPost(r.DB.QueryRow(postSelect+` WHERE p.id = $2`, viewerID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("post get: %w", err)
	}
	return p, nil
}

func (r *PostRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM posts WHERE id = $1`, id)
	return err
}

// Feed returns posts of churches the viewer follows, newest first.
func (r *PostRepository) Feed(viewerID, limit, offset int) ([]models.Post, error) {
	const q = postSelect + `
		WHERE p.church_id IN (SELECT church_id FROM follows WHERE user_id = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(q, viewerID, limit, offset)
}

func (r *PostRepository) ListByChurch(viewerID int, churchID int64, limit, offset int) ([]models.Post, error) {
	const q = postSelect + `
		WHERE p.church_id = $2
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryPosts(q, viewerID, churchID, limit, offset)
}

func (r *PostRepository) ListBookmarked(viewerID, limit, offset int) ([]models.Post, error) {
	const q = postSelect + `
		WHERE EXISTS (SELECT 1 FROM post_bookmarks b WHERE b.post_id = p.id AND b.user_id = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(q, viewerID, limit, offset)
}

func (r *PostRepository) queryPosts(q string, args ...any) ([]models.Post, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("post query: %w", err)
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("post query scan: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Like(postID int64, userID int) error {
	_, err := r.DB.Exec(
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	return err
}

func (r *PostRepository) Unlike(postID int64, userID int) error {
	_, err := r.DB.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (r *PostRepository) Bookmark(postID int64, userID int) error {
	_, err := r.DB.Exec(
		`INSERT INTO post_bookmarks (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	return err
}

func (r *PostRepository) Unbookmark(postID int64, userID int) error {
	_, err := r.DB.Exec(`DELETE FROM post_bookmarks WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (r *PostRepository) Count() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&c); err != nil {
		return 0, fmt.Errorf("post count: %w", err)
	}
	return c, nil
}
