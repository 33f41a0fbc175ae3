package repository

import (
	"context"
	"fmt"

	"github.com/apihub/apihub/internal/model"
)

// CreateEntry inserts a new API entry and fills in the store-assigned ID and
// creation time. Callers must supply a resolved owner; there is no path that
// creates an entry without one.
func (r *Repository) CreateEntry(ctx context.Context, entry *model.APIEntry) error {
	query := `
		INSERT INTO apis (user_id, name, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Name,
		entry.URL,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// ListEntriesByUser retrieves all entries owned by the given user, newest
// first.
func (r *Repository) ListEntriesByUser(ctx context.Context, userID int64) ([]*model.APIEntry, error) {
	query := `
		SELECT id, user_id, name, url, created_at
		FROM apis
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.APIEntry
	for rows.Next() {
		var entry model.APIEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Name,
			&entry.URL,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// ListFeedEntries retrieves the entries of the given user for the public
// aggregation feed. Only name and url are selected; the feed never exposes
// ids or timestamps.
func (r *Repository) ListFeedEntries(ctx context.Context, userID int64) ([]*model.APIEntry, error) {
	query := `
		SELECT name, url
		FROM apis
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.APIEntry
	for rows.Next() {
		var entry model.APIEntry
		if err := rows.Scan(&entry.Name, &entry.URL); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed entries: %w", err)
	}

	return entries, nil
}

// DeleteEntry deletes an entry only when both the entry ID and the owning
// user match. Deleting someone else's entry, or a missing one, is a no-op
// rather than an error: the row count is not checked.
func (r *Repository) DeleteEntry(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM apis
		WHERE id = $1 AND user_id = $2
	`

	_, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}
