package model

import "time"

// Media is one catalog entry.
type Media struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Year      int       `db:"year" json:"year"`
	PosterURL string    `db:"poster_url" json:"poster_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Favourite marks a media entry saved by a user.
type Favourite struct {
	UserID    int       `db:"user_id" json:"user_id"`
	MediaID   int       `db:"media_id" json:"media_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
