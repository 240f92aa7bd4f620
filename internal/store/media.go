package store

import (
	"context"
	"fmt"

	"flixnet/internal/database"
	"flixnet/internal/model"
)

func ListMedia(ctx context.Context, db database.DB) ([]model.Media, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, year, poster_url, created_at
		 FROM media ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListMedia: %w", err)
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
			return nil, fmt.Errorf("ListMedia: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMedia: %w", err)
	}
	return items, nil
}

func GetMediaByID(ctx context.Context, db database.DB, mediaID int) (*model.Media, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, year, poster_url, created_at
		 FROM media WHERE id = $1`,
		mediaID,
	)
	m := &model.Media{}
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.PosterURL,
		&m.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetMediaByID: %w", err)
	}
	return m, nil
}
