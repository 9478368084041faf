// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// InsertWatchEvent appends a watch event to the log. A missing LogID is
// assigned a fresh UUID. Duplicate log IDs are ignored so clients can retry
// safely.
func (db *DB) InsertWatchEvent(ctx context.Context, event *models.WatchEvent) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if event.LogID == "" {
		event.LogID = uuid.New().String()
	}
	if event.Source == "" {
		event.Source = models.SourceOrganic
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO watch_events (log_id, media_id, media_type, watched_at, season_number, episode_number, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		event.LogID, event.MediaID, string(event.MediaType), event.WatchedAt,
		event.SeasonNumber, event.EpisodeNumber, string(event.Source))
	metrics.RecordDBQuery("insert", "watch_events", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert watch event %s: %w", event.LogID, err)
	}

	metrics.RecordEvent(string(event.MediaType), string(event.Source))
	return nil
}

// DeleteWatchEvent removes one event by log ID. Returns false when no event
// with that ID exists.
func (db *DB) DeleteWatchEvent(ctx context.Context, logID string) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM watch_events WHERE log_id = ?`, logID)
	metrics.RecordDBQuery("delete", "watch_events", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to delete watch event %s: %w", logID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		metrics.EventsDeleted.Inc()
	}
	return affected > 0, nil
}

// DeleteEventsForMedia removes all events for a title. Used when a title is
// removed from the library with history purge requested.
func (db *DB) DeleteEventsForMedia(ctx context.Context, mediaID int) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM watch_events WHERE media_id = ?`, mediaID)
	metrics.RecordDBQuery("delete", "watch_events", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to delete events for media %d: %w", mediaID, err)
	}
	return res.RowsAffected()
}

// ListWatchEvents returns events ordered by insertion, optionally filtered by
// media ID (0 means all), with limit/offset pagination.
func (db *DB) ListWatchEvents(ctx context.Context, mediaID, limit, offset int) ([]models.WatchEvent, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `SELECT log_id, media_id, media_type, watched_at, season_number, episode_number, source
		FROM watch_events`
	args := []interface{}{}
	if mediaID > 0 {
		query += ` WHERE media_id = ?`
		args = append(args, mediaID)
	}
	query += ` ORDER BY created_at, log_id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "watch_events", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch events: %w", err)
	}
	defer closeQuietly(rows)

	events := []models.WatchEvent{}
	for rows.Next() {
		var e models.WatchEvent
		var mediaType, source string
		if err := rows.Scan(&e.LogID, &e.MediaID, &mediaType, &e.WatchedAt,
			&e.SeasonNumber, &e.EpisodeNumber, &source); err != nil {
			return nil, fmt.Errorf("failed to scan watch event: %w", err)
		}
		e.MediaType = models.MediaType(mediaType)
		e.Source = models.WatchSource(source)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountWatchEvents returns the total number of stored events, optionally
// filtered by media ID (0 means all).
func (db *DB) CountWatchEvents(ctx context.Context, mediaID int) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `SELECT COUNT(*) FROM watch_events`
	args := []interface{}{}
	if mediaID > 0 {
		query += ` WHERE media_id = ?`
		args = append(args, mediaID)
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count watch events: %w", err)
	}
	return count, nil
}
