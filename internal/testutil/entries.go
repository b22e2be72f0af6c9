package testutil

import (
	"context"
	"testing"
	"time"

	"journal-go/internal/journal"
	"journal-go/internal/model"
)

// Entry builds a valid entry for user "user-1" on date (YYYY-MM-DD).
func Entry(id, date string, score float64, tags ...string) model.Entry {
	if tags == nil {
		tags = []string{}
	}
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return model.Entry{
		ID:             id,
		UserID:         "user-1",
		Date:           model.MustParseDate(date),
		Content:        "entry for " + date,
		Summary:        "summary",
		SentimentScore: score,
		Tags:           tags,
		MemoryWeight:   5,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
}

// SeedEntries inserts entries into store, failing the test on error.
func SeedEntries(t *testing.T, store journal.EntryStore, entries ...model.Entry) {
	t.Helper()
	for i := range entries {
		if err := store.CreateEntry(context.Background(), &entries[i]); err != nil {
			t.Fatalf("seeding entry %s: %v", entries[i].ID, err)
		}
	}
}
