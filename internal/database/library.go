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

	json "github.com/goccy/go-json"

	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// UpsertLibraryItem adds a title to the library or refreshes its metadata,
// placing it in the given status list. A title lives in at most one status
// list; the favorite tag is preserved across upserts.
func (db *DB) UpsertLibraryItem(ctx context.Context, item models.TrackedItem, status models.LibraryStatus) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	genres, err := encodeGenreIDs(item.GenreIDs)
	if err != nil {
		return err
	}

	addedAt := time.Now()
	if item.AddedAt != nil {
		addedAt = *item.AddedAt
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO library_items (media_id, title, media_type, poster_path, genre_ids, status, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (media_id)
		 DO UPDATE SET title = excluded.title,
			media_type = excluded.media_type,
			poster_path = excluded.poster_path,
			genre_ids = excluded.genre_ids,
			status = excluded.status`,
		item.ID, item.Title, string(item.MediaType), item.PosterPath, genres, string(status), addedAt)
	metrics.RecordDBQuery("upsert", "library_items", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert library item %d: %w", item.ID, err)
	}
	return nil
}

// SetItemStatus moves a tracked title to a different status list. Returns
// false when the title is not in the library.
func (db *DB) SetItemStatus(ctx context.Context, mediaID int, status models.LibraryStatus) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE library_items SET status = ? WHERE media_id = ?`, string(status), mediaID)
	metrics.RecordDBQuery("update", "library_items", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to set status for media %d: %w", mediaID, err)
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// ItemStatus returns the current status of a tracked title, or StatusNone
// when the title is not in the library.
func (db *DB) ItemStatus(ctx context.Context, mediaID int) (models.LibraryStatus, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var status string
	err := db.conn.QueryRowContext(ctx,
		`SELECT status FROM library_items WHERE media_id = ?`, mediaID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.StatusNone, nil
	}
	if err != nil {
		return models.StatusNone, fmt.Errorf("failed to load status for media %d: %w", mediaID, err)
	}
	return models.LibraryStatus(status), nil
}

// RemoveLibraryItem deletes a title from the library along with its rating
// and manual preset. Watch events and progress are kept unless the caller
// purges them explicitly.
func (db *DB) RemoveLibraryItem(ctx context.Context, mediaID int) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM library_items WHERE media_id = ?`, mediaID)
	metrics.RecordDBQuery("delete", "library_items", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to remove library item %d: %w", mediaID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM ratings WHERE media_id = ?`, mediaID); err != nil {
		return false, fmt.Errorf("failed to remove rating for media %d: %w", mediaID, err)
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM manual_presets WHERE media_id = ?`, mediaID); err != nil {
		return false, fmt.Errorf("failed to remove manual preset for media %d: %w", mediaID, err)
	}

	return affected > 0, nil
}

// SetFavorite toggles the favorite tag on a tracked title. Returns false
// when the title is not in the library.
func (db *DB) SetFavorite(ctx context.Context, mediaID int, favorite bool) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE library_items SET favorite = ? WHERE media_id = ?`, favorite, mediaID)
	metrics.RecordDBQuery("update", "library_items", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to set favorite for media %d: %w", mediaID, err)
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// SetRating stores a 1-10 rating for a title.
func (db *DB) SetRating(ctx context.Context, mediaID, rating int) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO ratings (media_id, rating) VALUES (?, ?)
		 ON CONFLICT (media_id) DO UPDATE SET rating = excluded.rating`,
		mediaID, rating)
	metrics.RecordDBQuery("upsert", "ratings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to set rating for media %d: %w", mediaID, err)
	}
	return nil
}

// DeleteRating removes a title's rating.
func (db *DB) DeleteRating(ctx context.Context, mediaID int) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `DELETE FROM ratings WHERE media_id = ?`, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete rating for media %d: %w", mediaID, err)
	}
	return nil
}

// SetManualPreset pins a manual status (plan_to_watch, on_hold, dropped) that
// reclassification respects until watch activity overrides it.
func (db *DB) SetManualPreset(ctx context.Context, mediaID int, status models.LibraryStatus) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if !status.IsManualPreset() {
		return fmt.Errorf("status %q is not a manual preset", status)
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO manual_presets (media_id, status) VALUES (?, ?)
		 ON CONFLICT (media_id) DO UPDATE SET status = excluded.status`,
		mediaID, string(status))
	metrics.RecordDBQuery("upsert", "manual_presets", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to set manual preset for media %d: %w", mediaID, err)
	}
	return nil
}

// ClearManualPreset removes a pinned manual status.
func (db *DB) ClearManualPreset(ctx context.Context, mediaID int) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `DELETE FROM manual_presets WHERE media_id = ?`, mediaID)
	if err != nil {
		return fmt.Errorf("failed to clear manual preset for media %d: %w", mediaID, err)
	}
	return nil
}

// UpsertPausedSession records a paused live session for a movie.
func (db *DB) UpsertPausedSession(ctx context.Context, s models.PausedSession) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO paused_sessions (media_id, media_type, paused_at, position_seconds)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (media_id)
		 DO UPDATE SET paused_at = excluded.paused_at, position_seconds = excluded.position_seconds`,
		s.MediaID, string(s.MediaType), s.PausedAt, s.PositionS)
	metrics.RecordDBQuery("upsert", "paused_sessions", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert paused session for media %d: %w", s.MediaID, err)
	}
	return nil
}

// DeletePausedSession clears a paused session, typically when the movie is
// resumed to completion or abandoned.
func (db *DB) DeletePausedSession(ctx context.Context, mediaID int) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `DELETE FROM paused_sessions WHERE media_id = ?`, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete paused session for media %d: %w", mediaID, err)
	}
	return nil
}

func encodeGenreIDs(ids []int) (sql.NullString, error) {
	if len(ids) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode genre IDs: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func decodeGenreIDs(raw sql.NullString) ([]int, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw.String), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode genre IDs: %w", err)
	}
	return ids, nil
}
