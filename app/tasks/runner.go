// Package tasks drives the ingestion pipeline: fetch, filter, summarize,
// notify, record.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rssdigest/app/cache"
	"rssdigest/app/config"
	"rssdigest/app/feed"
)

// RunStats summarizes one pipeline run.
type RunStats struct {
	Fetched         int
	Fresh           int
	New             int
	Processed       int
	Notified        int
	SummaryFailures int
}

type Runner struct {
	sources    []config.Source
	schedule   config.ScheduleConfig
	fetcher    FeedFetcher
	extractor  ContentExtractor
	summarizer Summarizer
	dispatcher Dispatcher
	store      ItemStore
	cache      *cache.Store
}

func NewRunner(cfg *config.Config, fetcher FeedFetcher, extractor ContentExtractor,
	summarizer Summarizer, dispatcher Dispatcher, store ItemStore,
	cacheStore *cache.Store) *Runner {
	return &Runner{
		sources:    cfg.Feeds,
		schedule:   cfg.Schedule,
		fetcher:    fetcher,
		extractor:  extractor,
		summarizer: summarizer,
		dispatcher: dispatcher,
		store:      store,
		cache:      cacheStore,
	}
}

// Run executes one full pipeline pass. Per-source fetch errors and per-item
// summarization or notification failures are absorbed; only a failure of the
// processing record store aborts the run, since continuing without durable
// dedup would re-deliver items on the next pass.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	var items []feed.Item
	for _, source := range r.sources {
		fetched, err := r.fetcher.Run(ctx, source, r.cache)
		if err != nil {
			slog.Error("Feed fetch failed", "feed", source.Name, "error", err)
			continue
		}
		items = append(items, fetched...)
	}
	stats.Fetched = len(items)

	if err := r.cache.Save(); err != nil {
		slog.Warn("Failed to persist validator cache", "error", err)
	}

	maxAge := time.Duration(r.schedule.MaxAgeHours) * time.Hour
	items = feed.FilterByAge(items, maxAge, time.Now())
	stats.Fresh = len(items)

	newItems, err := r.store.FilterNew(items)
	if err != nil {
		return stats, fmt.Errorf("failed to filter new items: %w", err)
	}
	stats.New = len(newItems)

	if r.schedule.MaxItemsPerRun > 0 && len(newItems) > r.schedule.MaxItemsPerRun {
		slog.Info("Capping run", "new", len(newItems), "cap", r.schedule.MaxItemsPerRun)
		newItems = newItems[:r.schedule.MaxItemsPerRun]
	}

	for _, item := range newItems {
		summary := r.summarize(ctx, item)
		if summary == "" {
			stats.SummaryFailures++
		}

		if summary != "" && r.dispatcher.HasChannels() {
			results := r.dispatcher.Run(ctx, item, summary)
			for _, ok := range results {
				if ok {
					stats.Notified++
					break
				}
			}
		}

		// Recorded even when summarization failed: the item is consumed
		// either way and must not resurface on the next run.
		if err := r.store.MarkProcessed(item, summary); err != nil {
			return stats, fmt.Errorf("failed to record item %q: %w", item.URL, err)
		}
		stats.Processed++
	}

	slog.Info("Run complete", "fetched", stats.Fetched, "fresh", stats.Fresh,
		"new", stats.New, "processed", stats.Processed, "notified", stats.Notified,
		"summaryFailures", stats.SummaryFailures)

	return stats, nil
}

func (r *Runner) summarize(ctx context.Context, item feed.Item) string {
	if item.Body == "" && r.extractor != nil {
		body, err := r.extractor.Run(ctx, item.URL)
		if err != nil {
			slog.Debug("Content extraction failed", "url", item.URL, "error", err)
		} else {
			item.Body = body
		}
	}

	summary, err := r.summarizer.Run(ctx, item)
	if err != nil {
		slog.Warn("Summarization failed", "title", item.Title, "error", err)
		return ""
	}

	return summary
}
