package store

import (
	"context"
	"fmt"

	"flixnet/internal/database"
	"flixnet/internal/model"
)

// ListFavourites returns the media a user has favourited, newest first.
func ListFavourites(ctx context.Context, db database.DB, userID int) ([]model.Media, error) {
	rows, err := db.Query(ctx,
		`SELECT m.id, m.title, m.year, m.poster_url, m.created_at
		 FROM favourites f
		 JOIN media m ON m.id = f.media_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFavourites: %w", err)
	}
	defer rows.Close()

	var items []model.Media
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Year,
			&m.PosterURL,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListFavourites: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListFavourites: %w", err)
	}
	return items, nil
}

// AddFavourite is idempotent: favouriting the same media twice is a no-op.
func AddFavourite(ctx context.Context, db database.DB, userID, mediaID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO favourites (user_id, media_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID,
		mediaID,
	)
	if err != nil {
		return fmt.Errorf("AddFavourite: %w", err)
	}
	return nil
}

func RemoveFavourite(ctx context.Context, db database.DB, userID, mediaID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM favourites
		 WHERE user_id = $1 AND media_id = $2`,
		userID,
		mediaID,
	)
	if err != nil {
		return fmt.Errorf("RemoveFavourite: %w", err)
	}
	return nil
}
