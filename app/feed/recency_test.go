package feed

import (
	"testing"
	"time"
)

func TestFilterByAge_KeepsFreshItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-1 * time.Hour)
	stale := now.Add(-48 * time.Hour)

	items := []Item{
		{Title: "fresh", Published: &fresh},
		{Title: "stale", Published: &stale},
	}

	result := FilterByAge(items, 24*time.Hour, now)

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Title != "fresh" {
		t.Errorf("Expected 'fresh' to survive, got '%s'", result[0].Title)
	}
}

func TestFilterByAge_BoundaryIsInclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	onBoundary := now.Add(-24 * time.Hour)

	items := []Item{{Title: "boundary", Published: &onBoundary}}

	result := FilterByAge(items, 24*time.Hour, now)

	if len(result) != 1 {
		t.Errorf("Expected item published exactly at cutoff to be kept, got %d items", len(result))
	}
}

func TestFilterByAge_MissingTimestampKept(t *testing.T) {
	now := time.Now()
	items := []Item{{Title: "undated"}}

	result := FilterByAge(items, 24*time.Hour, now)

	if len(result) != 1 {
		t.Errorf("Expected item without a timestamp to be kept, got %d items", len(result))
	}
}

func TestFilterByAge_PreservesOrder(t *testing.T) {
	now := time.Now()
	t1 := now.Add(-1 * time.Hour)
	t2 := now.Add(-2 * time.Hour)
	t3 := now.Add(-3 * time.Hour)

	items := []Item{
		{Title: "first", Published: &t1},
		{Title: "second", Published: &t2},
		{Title: "third", Published: &t3},
	}

	result := FilterByAge(items, 24*time.Hour, now)

	if len(result) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(result))
	}
	for i, expected := range []string{"first", "second", "third"} {
		if result[i].Title != expected {
			t.Errorf("Expected item %d to be '%s', got '%s'", i, expected, result[i].Title)
		}
	}
}

func TestFilterByAge_Empty(t *testing.T) {
	result := FilterByAge(nil, 24*time.Hour, time.Now())

	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d items", len(result))
	}
}
