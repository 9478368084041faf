// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// LoadUserData materializes a full snapshot of the user's data for the
// aggregation engine. Showlog is single-user and all writes go through this
// process, so reading the tables back to back yields a consistent snapshot:
// the genre-resolution pass sees the same library lists the streak pass used.
func (db *DB) LoadUserData(ctx context.Context) (*models.UserData, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	u := &models.UserData{
		Ratings:       map[int]int{},
		ManualPresets: map[int]models.LibraryStatus{},
	}

	var err error
	if u.Events, err = db.ListWatchEvents(ctx, 0, 1<<30, 0); err != nil {
		return nil, err
	}
	if u.Progress, err = db.loadProgress(ctx); err != nil {
		return nil, err
	}
	if u.Library, err = db.loadLibrary(ctx); err != nil {
		return nil, err
	}
	if err = db.loadRatings(ctx, u.Ratings); err != nil {
		return nil, err
	}
	if err = db.loadManualPresets(ctx, u.ManualPresets); err != nil {
		return nil, err
	}
	if u.CustomLists, err = db.loadCustomLists(ctx); err != nil {
		return nil, err
	}
	if u.PausedSessions, err = db.loadPausedSessions(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func (db *DB) loadLibrary(ctx context.Context) (models.Library, error) {
	var lib models.Library

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT media_id, title, media_type, poster_path, genre_ids, status, favorite, added_at
		 FROM library_items ORDER BY added_at, media_id`)
	metrics.RecordDBQuery("select", "library_items", time.Since(start), err)
	if err != nil {
		return lib, fmt.Errorf("failed to query library items: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var item models.TrackedItem
		var mediaType, status string
		var poster, genres sql.NullString
		var favorite bool
		var addedAt time.Time
		if err := rows.Scan(&item.ID, &item.Title, &mediaType, &poster, &genres,
			&status, &favorite, &addedAt); err != nil {
			return lib, fmt.Errorf("failed to scan library item: %w", err)
		}
		item.MediaType = models.MediaType(mediaType)
		item.PosterPath = poster.String
		item.AddedAt = &addedAt
		ids, err := decodeGenreIDs(genres)
		if err != nil {
			return lib, err
		}
		item.GenreIDs = ids

		switch models.LibraryStatus(status) {
		case models.StatusWatching:
			lib.Watching = append(lib.Watching, item)
		case models.StatusPlanToWatch:
			lib.PlanToWatch = append(lib.PlanToWatch, item)
		case models.StatusCompleted:
			lib.Completed = append(lib.Completed, item)
		case models.StatusOnHold:
			lib.OnHold = append(lib.OnHold, item)
		case models.StatusDropped:
			lib.Dropped = append(lib.Dropped, item)
		case models.StatusAllCaughtUp:
			lib.AllCaughtUp = append(lib.AllCaughtUp, item)
		}
		if favorite {
			lib.Favorites = append(lib.Favorites, item)
		}
	}
	return lib, rows.Err()
}

func (db *DB) loadRatings(ctx context.Context, dst map[int]int) error {
	rows, err := db.conn.QueryContext(ctx, `SELECT media_id, rating FROM ratings`)
	if err != nil {
		return fmt.Errorf("failed to query ratings: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var mediaID, rating int
		if err := rows.Scan(&mediaID, &rating); err != nil {
			return fmt.Errorf("failed to scan rating: %w", err)
		}
		dst[mediaID] = rating
	}
	return rows.Err()
}

func (db *DB) loadManualPresets(ctx context.Context, dst map[int]models.LibraryStatus) error {
	rows, err := db.conn.QueryContext(ctx, `SELECT media_id, status FROM manual_presets`)
	if err != nil {
		return fmt.Errorf("failed to query manual presets: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var mediaID int
		var status string
		if err := rows.Scan(&mediaID, &status); err != nil {
			return fmt.Errorf("failed to scan manual preset: %w", err)
		}
		dst[mediaID] = models.LibraryStatus(status)
	}
	return rows.Err()
}

func (db *DB) loadPausedSessions(ctx context.Context) ([]models.PausedSession, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT media_id, media_type, paused_at, position_seconds FROM paused_sessions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query paused sessions: %w", err)
	}
	defer closeQuietly(rows)

	sessions := []models.PausedSession{}
	for rows.Next() {
		var s models.PausedSession
		var mediaType string
		if err := rows.Scan(&s.MediaID, &mediaType, &s.PausedAt, &s.PositionS); err != nil {
			return nil, fmt.Errorf("failed to scan paused session: %w", err)
		}
		s.MediaType = models.MediaType(mediaType)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
