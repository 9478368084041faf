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

// SetEpisodeProgress upserts the progress record for one episode. Rows that
// revert to unwatched with no journal are deleted to keep the store sparse.
func (db *DB) SetEpisodeProgress(ctx context.Context, mediaID, season, episode int, rec models.EpisodeProgress) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if rec.Status == models.WatchStateUnwatched && rec.Journal == nil {
		start := time.Now()
		_, err := db.conn.ExecContext(ctx,
			`DELETE FROM episode_progress WHERE media_id = ? AND season_number = ? AND episode_number = ?`,
			mediaID, season, episode)
		metrics.RecordDBQuery("delete", "episode_progress", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("failed to clear progress for %d s%de%d: %w", mediaID, season, episode, err)
		}
		return nil
	}

	var text, mood sql.NullString
	var at sql.NullTime
	if rec.Journal != nil {
		text = sql.NullString{String: rec.Journal.Text, Valid: true}
		if rec.Journal.Mood != "" {
			mood = sql.NullString{String: rec.Journal.Mood, Valid: true}
		}
		at = sql.NullTime{Time: rec.Journal.Timestamp, Valid: true}
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO episode_progress (media_id, season_number, episode_number, status, journal_text, journal_mood, journal_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (media_id, season_number, episode_number)
		 DO UPDATE SET status = excluded.status,
			journal_text = excluded.journal_text,
			journal_mood = excluded.journal_mood,
			journal_at = excluded.journal_at`,
		mediaID, season, episode, int(rec.Status), text, mood, at)
	metrics.RecordDBQuery("upsert", "episode_progress", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert progress for %d s%de%d: %w", mediaID, season, episode, err)
	}
	return nil
}

// EpisodeProgress returns the stored record for one episode. Absence maps to
// the zero record, which encodes unwatched.
func (db *DB) EpisodeProgress(ctx context.Context, mediaID, season, episode int) (models.EpisodeProgress, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var status int
	var text, mood sql.NullString
	var at sql.NullTime
	err := db.conn.QueryRowContext(ctx,
		`SELECT status, journal_text, journal_mood, journal_at
		 FROM episode_progress
		 WHERE media_id = ? AND season_number = ? AND episode_number = ?`,
		mediaID, season, episode).Scan(&status, &text, &mood, &at)
	if err == sql.ErrNoRows {
		return models.EpisodeProgress{}, nil
	}
	if err != nil {
		return models.EpisodeProgress{}, fmt.Errorf("failed to load progress for %d s%de%d: %w", mediaID, season, episode, err)
	}

	rec := models.EpisodeProgress{Status: models.WatchState(status)}
	if text.Valid {
		rec.Journal = &models.JournalEntry{
			Text:      text.String,
			Mood:      mood.String,
			Timestamp: at.Time,
		}
	}
	return rec, nil
}

// DeleteProgressForMedia removes all progress rows for a title.
func (db *DB) DeleteProgressForMedia(ctx context.Context, mediaID int) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `DELETE FROM episode_progress WHERE media_id = ?`, mediaID)
	metrics.RecordDBQuery("delete", "episode_progress", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete progress for media %d: %w", mediaID, err)
	}
	return nil
}

func (db *DB) loadProgress(ctx context.Context) (models.ProgressStore, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT media_id, season_number, episode_number, status, journal_text, journal_mood, journal_at
		 FROM episode_progress`)
	metrics.RecordDBQuery("select", "episode_progress", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query episode progress: %w", err)
	}
	defer closeQuietly(rows)

	store := models.ProgressStore{}
	for rows.Next() {
		var mediaID, season, episode, status int
		var text, mood sql.NullString
		var at sql.NullTime
		if err := rows.Scan(&mediaID, &season, &episode, &status, &text, &mood, &at); err != nil {
			return nil, fmt.Errorf("failed to scan episode progress: %w", err)
		}

		rec := models.EpisodeProgress{Status: models.WatchState(status)}
		if text.Valid {
			rec.Journal = &models.JournalEntry{Text: text.String, Mood: mood.String, Timestamp: at.Time}
		}

		tp, ok := store[mediaID]
		if !ok {
			tp = models.TitleProgress{}
			store[mediaID] = tp
		}
		tp.Set(season, episode, rec)
	}
	return store, rows.Err()
}
