package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"rssdigest/app/feed"
)

// ItemRepository handles database operations for processed items.
type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// IsProcessed reports whether a fingerprint has already been recorded.
func (r *ItemRepository) IsProcessed(fingerprint string) (bool, error) {
	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM processed_items WHERE fingerprint = ? LIMIT 1
	`, fingerprint).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check processed item: %w", err)
	}

	return true, nil
}

// FilterNew returns the subsequence of items whose fingerprint is not yet
// recorded, preserving input order.
func (r *ItemRepository) FilterNew(items []feed.Item) ([]feed.Item, error) {
	newItems := make([]feed.Item, 0, len(items))

	for _, item := range items {
		processed, err := r.IsProcessed(item.Fingerprint)
		if err != nil {
			return nil, err
		}
		if !processed {
			newItems = append(newItems, item)
		}
	}

	return newItems, nil
}

// MarkProcessed records an item as handled, with the current wall-clock time.
// Idempotent upsert keyed by fingerprint: repeated calls keep a single row
// and overwrite summary and timestamp. An empty summary is stored as NULL so
// a failed enrichment still consumes the item and is never retried.
func (r *ItemRepository) MarkProcessed(item feed.Item, summary string) error {
	var summaryValue any
	if summary != "" {
		summaryValue = summary
	}

	_, err := r.db.Exec(`
		INSERT INTO processed_items (fingerprint, url, title, feed_name, summary, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO UPDATE SET
			summary = excluded.summary,
			processed_at = excluded.processed_at
	`, item.Fingerprint, item.URL, item.Title, item.FeedName, summaryValue,
		time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to mark item processed: %w", err)
	}

	return nil
}

// GetStats returns the total record count and per-feed counts, largest first.
func (r *ItemRepository) GetStats() (Stats, error) {
	var stats Stats

	err := r.db.QueryRow(`SELECT COUNT(*) FROM processed_items`).Scan(&stats.TotalCount)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count processed items: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT COALESCE(feed_name, ''), COUNT(*) AS count
		FROM processed_items
		GROUP BY feed_name
		ORDER BY count DESC, feed_name
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count items by feed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fc FeedCount
		if err := rows.Scan(&fc.FeedName, &fc.Count); err != nil {
			return Stats{}, fmt.Errorf("failed to scan feed count row: %w", err)
		}
		stats.ByFeed = append(stats.ByFeed, fc)
	}

	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("error iterating feed count rows: %w", err)
	}

	return stats, nil
}

// GetRecentItems returns the most recently processed items.
func (r *ItemRepository) GetRecentItems(limit int) ([]ProcessedItem, error) {
	rows, err := r.db.Query(`
		SELECT id, fingerprint, url, COALESCE(title, ''), COALESCE(feed_name, ''),
		       summary, processed_at
		FROM processed_items
		ORDER BY processed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent items: %w", err)
	}
	defer rows.Close()

	var items []ProcessedItem
	for rows.Next() {
		var item ProcessedItem
		var summary sql.NullString
		var processedAt string

		err := rows.Scan(&item.ID, &item.Fingerprint, &item.URL, &item.Title,
			&item.FeedName, &summary, &processedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}

		if summary.Valid {
			item.Summary = &summary.String
		}
		if t, err := time.Parse(time.RFC3339, processedAt); err == nil {
			item.ProcessedAt = t
		} else {
			slog.Warn("Malformed processed_at, leaving zero timestamp",
				"fingerprint", item.Fingerprint, "value", processedAt)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
