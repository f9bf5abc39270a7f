package database

import "time"

// ProcessedItem is one durable deduplication record. At most one row exists
// per fingerprint; a later run may refresh summary and processed_at but
// never creates a duplicate. Rows are never deleted by this application.
type ProcessedItem struct {
	ID          int64
	Fingerprint string
	URL         string
	Title       string
	FeedName    string
	Summary     *string
	ProcessedAt time.Time
}

type FeedCount struct {
	FeedName string
	Count    int
}

// Stats aggregates the processed-item record set. ByFeed is ordered by
// count, descending.
type Stats struct {
	TotalCount int
	ByFeed     []FeedCount
}
