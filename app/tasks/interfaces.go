package tasks

import (
	"context"

	"rssdigest/app/cache"
	"rssdigest/app/config"
	"rssdigest/app/feed"
)

// FeedFetcher retrieves and parses one source, using the validator store for
// conditional requests. A nil item slice with a nil error means "unchanged".
type FeedFetcher interface {
	Run(ctx context.Context, source config.Source, store *cache.Store) ([]feed.Item, error)
}

// ContentExtractor pulls readable text from an article page, for items whose
// feed entry carried no body.
type ContentExtractor interface {
	Run(ctx context.Context, pageURL string) (string, error)
}

// Summarizer produces a short summary for one item.
type Summarizer interface {
	Run(ctx context.Context, item feed.Item) (string, error)
}

// Dispatcher fans an item out to the configured notification channels.
type Dispatcher interface {
	HasChannels() bool
	Run(ctx context.Context, item feed.Item, summary string) map[string]bool
}

// ItemStore is the durable processing record.
type ItemStore interface {
	FilterNew(items []feed.Item) ([]feed.Item, error)
	MarkProcessed(item feed.Item, summary string) error
}
