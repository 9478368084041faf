// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables.
//
// watched_at on watch_events is TEXT, not TIMESTAMP: events arrive with
// client-supplied ISO-8601 strings and malformed values must survive storage
// round-trips. The engine decides what parses, not the database.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS watch_events (
			log_id TEXT PRIMARY KEY,
			media_id INTEGER NOT NULL,
			media_type TEXT NOT NULL,
			watched_at TEXT NOT NULL,
			season_number INTEGER DEFAULT 0,
			episode_number INTEGER DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'organic',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS episode_progress (
			media_id INTEGER NOT NULL,
			season_number INTEGER NOT NULL,
			episode_number INTEGER NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			journal_text TEXT,
			journal_mood TEXT,
			journal_at TIMESTAMP,
			PRIMARY KEY (media_id, season_number, episode_number)
		)`,

		// One row per tracked title. status holds the library list name;
		// favorite is an orthogonal tag, not a status.
		`CREATE TABLE IF NOT EXISTS library_items (
			media_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			media_type TEXT NOT NULL,
			poster_path TEXT,
			genre_ids TEXT,
			status TEXT NOT NULL DEFAULT '',
			favorite BOOLEAN NOT NULL DEFAULT FALSE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ratings (
			media_id INTEGER PRIMARY KEY,
			rating INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS manual_presets (
			media_id INTEGER PRIMARY KEY,
			status TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS custom_lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS custom_list_items (
			list_id TEXT NOT NULL,
			media_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			media_type TEXT NOT NULL,
			poster_path TEXT,
			genre_ids TEXT,
			PRIMARY KEY (list_id, media_id)
		)`,

		`CREATE TABLE IF NOT EXISTS paused_sessions (
			media_id INTEGER PRIMARY KEY,
			media_type TEXT NOT NULL,
			paused_at TIMESTAMP NOT NULL,
			position_seconds INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_watch_events_media ON watch_events (media_id)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_events_source ON watch_events (source)`,
		`CREATE INDEX IF NOT EXISTS idx_library_items_status ON library_items (status)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}
