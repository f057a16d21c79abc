package models

import "time"

type Post struct {
	ID        int64     `json:"id"`
	ChurchID  int64     `json:"church_id"`
	AuthorID  int       `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// filled by list queries
	LikeCount  int  `json:"like_count"`
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
}

type PostFilter struct {
	ChurchID int64
	AuthorID int
	Limit    int
	Offset   int
}
