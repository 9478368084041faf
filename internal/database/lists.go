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

	"github.com/google/uuid"

	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// CreateCustomList creates a new named list and returns it with its assigned
// ID.
func (db *DB) CreateCustomList(ctx context.Context, name string) (*models.CustomList, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	list := &models.CustomList{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO custom_lists (id, name, created_at) VALUES (?, ?, ?)`,
		list.ID, list.Name, list.CreatedAt)
	metrics.RecordDBQuery("insert", "custom_lists", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom list %q: %w", name, err)
	}
	return list, nil
}

// DeleteCustomList removes a list and its items. Returns false when the list
// does not exist.
func (db *DB) DeleteCustomList(ctx context.Context, listID string) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM custom_list_items WHERE list_id = ?`, listID); err != nil {
		return false, fmt.Errorf("failed to delete items of list %s: %w", listID, err)
	}

	res, err := db.conn.ExecContext(ctx, `DELETE FROM custom_lists WHERE id = ?`, listID)
	if err != nil {
		return false, fmt.Errorf("failed to delete custom list %s: %w", listID, err)
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// AddListItem adds a title to a custom list. Duplicate adds are ignored.
// Returns false when the list does not exist.
func (db *DB) AddListItem(ctx context.Context, listID string, item models.TrackedItem) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var exists int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_lists WHERE id = ?`, listID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check list %s: %w", listID, err)
	}
	if exists == 0 {
		return false, nil
	}

	genres, err := encodeGenreIDs(item.GenreIDs)
	if err != nil {
		return false, err
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO custom_list_items (list_id, media_id, title, media_type, poster_path, genre_ids)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		listID, item.ID, item.Title, string(item.MediaType), item.PosterPath, genres)
	metrics.RecordDBQuery("insert", "custom_list_items", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to add media %d to list %s: %w", item.ID, listID, err)
	}
	return true, nil
}

// RemoveListItem removes a title from a custom list. Returns false when the
// title was not in the list.
func (db *DB) RemoveListItem(ctx context.Context, listID string, mediaID int) (bool, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM custom_list_items WHERE list_id = ? AND media_id = ?`, listID, mediaID)
	if err != nil {
		return false, fmt.Errorf("failed to remove media %d from list %s: %w", mediaID, listID, err)
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (db *DB) loadCustomLists(ctx context.Context) ([]models.CustomList, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM custom_lists ORDER BY created_at, id`)
	metrics.RecordDBQuery("select", "custom_lists", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom lists: %w", err)
	}
	defer closeQuietly(rows)

	lists := []models.CustomList{}
	index := map[string]int{}
	for rows.Next() {
		var l models.CustomList
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom list: %w", err)
		}
		index[l.ID] = len(lists)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := db.conn.QueryContext(ctx,
		`SELECT list_id, media_id, title, media_type, poster_path, genre_ids
		 FROM custom_list_items ORDER BY list_id, media_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom list items: %w", err)
	}
	defer closeQuietly(itemRows)

	for itemRows.Next() {
		var listID, mediaType string
		var poster, genres sql.NullString
		var item models.TrackedItem
		if err := itemRows.Scan(&listID, &item.ID, &item.Title, &mediaType, &poster, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan custom list item: %w", err)
		}
		item.MediaType = models.MediaType(mediaType)
		item.PosterPath = poster.String
		ids, err := decodeGenreIDs(genres)
		if err != nil {
			return nil, err
		}
		item.GenreIDs = ids

		if i, ok := index[listID]; ok {
			lists[i].Items = append(lists[i].Items, item)
		}
	}
	return lists, itemRows.Err()
}
