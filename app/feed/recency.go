package feed

import "time"

// FilterByAge keeps items published within maxAge of now, preserving input
// order. Items without a publication date are kept: unknown age must not
// silently drop content.
func FilterByAge(items []Item, maxAge time.Duration, now time.Time) []Item {
	cutoff := now.Add(-maxAge)

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Published == nil || !item.Published.Before(cutoff) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
