package journal_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"journal-go/internal/analytics"
	"journal-go/internal/journal"
	"journal-go/internal/model"
	"journal-go/internal/testutil"
)

const userID = "user-1"

type testEnv struct {
	service   *journal.Service
	store     journal.EntryStore
	assistant *testutil.StubAssistant
	clock     *testutil.StubClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := testutil.NewTestStore(t)
	assistant := testutil.NewStubAssistant()
	clock := testutil.FixedClock()
	svc := journal.NewService(store, assistant, assistant, journal.NewNopLogger(), clock, testutil.NewStubIDGenerator())
	return &testEnv{service: svc, store: store, assistant: assistant, clock: clock}
}

// failingStore returns err from every read.
type failingStore struct {
	journal.EntryStore
	err error
}

func (f *failingStore) ListEntries(context.Context, string) ([]model.Entry, error) {
	return nil, f.err
}

func (f *failingStore) ListEntriesInRange(context.Context, string, model.Date, model.Date) ([]model.Entry, error) {
	return nil, f.err
}

func (f *failingStore) GetEntryForDate(context.Context, string, model.Date) (*model.Entry, error) {
	return nil, f.err
}

func TestService_WriteToday(t *testing.T) {
	t.Run("creates today's entry", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		entry, created, err := env.service.WriteToday(ctx, userID, "  Quiet morning, long walk.  ")
		if err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		if !created {
			t.Error("WriteToday() created = false, want true")
		}
		if entry.ID != "entry-1" {
			t.Errorf("ID = %q, want %q", entry.ID, "entry-1")
		}
		if entry.Date != model.MustParseDate("2024-01-15") {
			t.Errorf("Date = %s, want 2024-01-15", entry.Date)
		}
		if entry.Content != "Quiet morning, long walk." {
			t.Errorf("Content = %q, content should be trimmed", entry.Content)
		}
		if entry.SentimentScore != 2 || entry.MemoryWeight != 3 {
			t.Errorf("score/weight = %v/%d, want 2/3", entry.SentimentScore, entry.MemoryWeight)
		}

		stored, err := env.store.GetEntryForDate(ctx, userID, env.clock.Today())
		if err != nil {
			t.Fatalf("GetEntryForDate() error = %v", err)
		}
		if stored == nil || stored.ID != entry.ID {
			t.Fatalf("stored entry = %+v, want ID %s", stored, entry.ID)
		}
		if !reflect.DeepEqual(stored.Tags, []string{"Self"}) {
			t.Errorf("stored Tags = %v, want [Self]", stored.Tags)
		}
	})

	t.Run("second write updates the same entry", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		first, _, err := env.service.WriteToday(ctx, userID, "first draft")
		if err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		env.clock.Advance(2 * time.Hour)
		env.assistant.Analysis.SentimentScore = -1

		second, created, err := env.service.WriteToday(ctx, userID, "second draft")
		if err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		if created {
			t.Error("WriteToday() created = true on second write")
		}
		if second.ID != first.ID {
			t.Errorf("ID = %q, want %q", second.ID, first.ID)
		}
		if !second.UpdatedAt.After(second.CreatedAt) {
			t.Error("UpdatedAt should move forward on update")
		}

		entries, err := env.service.Entries(ctx, userID)
		if err != nil {
			t.Fatalf("Entries() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("len(entries) = %d, want 1", len(entries))
		}
		if entries[0].Content != "second draft" || entries[0].SentimentScore != -1 {
			t.Errorf("stored entry = %q/%v, want updated values", entries[0].Content, entries[0].SentimentScore)
		}
	})

	t.Run("writes on a new day create a new entry", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		if _, _, err := env.service.WriteToday(ctx, userID, "monday"); err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		env.clock.AdvanceDays(1)
		entry, created, err := env.service.WriteToday(ctx, userID, "tuesday")
		if err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		if !created || entry.Date != model.MustParseDate("2024-01-16") {
			t.Errorf("created = %v date = %s, want new entry on 2024-01-16", created, entry.Date)
		}
	})

	t.Run("rejects blank content", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.service.WriteToday(context.Background(), userID, " \n\t ")
		if !errors.Is(err, journal.ErrEmptyContent) {
			t.Errorf("WriteToday() error = %v, want ErrEmptyContent", err)
		}
		if calls := env.assistant.Calls(); len(calls) != 0 {
			t.Errorf("analyzer called for blank content: %v", calls)
		}
	})

	t.Run("clamps and normalizes the analysis", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.Analysis = model.Analysis{
			SentimentScore: 9,
			Summary:        "wild",
			Tags:           []string{"career", "Weather", "Career"},
			MemoryWeight:   0,
		}

		entry, _, err := env.service.WriteToday(context.Background(), userID, "promotion!")
		if err != nil {
			t.Fatalf("WriteToday() error = %v", err)
		}
		if entry.SentimentScore != model.MaxSentiment {
			t.Errorf("SentimentScore = %v, want %v", entry.SentimentScore, model.MaxSentiment)
		}
		if entry.MemoryWeight != 1 {
			t.Errorf("MemoryWeight = %d, want 1", entry.MemoryWeight)
		}
		if !reflect.DeepEqual(entry.Tags, []string{"Career"}) {
			t.Errorf("Tags = %v, want [Career]", entry.Tags)
		}
	})

	t.Run("analyzer failure stores nothing", func(t *testing.T) {
		env := newTestEnv(t)
		boom := errors.New("model unavailable")
		env.assistant.Err = boom

		_, _, err := env.service.WriteToday(context.Background(), userID, "hello")
		if !errors.Is(err, boom) {
			t.Fatalf("WriteToday() error = %v, want wrapped %v", err, boom)
		}

		entries, _ := env.service.Entries(context.Background(), userID)
		if len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
	})
}

func TestService_Trends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedEntries(t, env.store,
		testutil.Entry("a", "2023-11-01", -4, "Family"),
		testutil.Entry("b", "2024-01-01", 1, "Career"),
		testutil.Entry("c", "2024-01-10", 3, "Career"),
	)

	summary, err := env.service.Trends(ctx, userID, 30)
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if summary.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", summary.TotalEntries)
	}
	if summary.AverageSentiment != 2 {
		t.Errorf("AverageSentiment = %v, want 2", summary.AverageSentiment)
	}
	if summary.TrendDirection != analytics.Up {
		t.Errorf("TrendDirection = %s, want up", summary.TrendDirection)
	}
	if summary.EndDate != env.clock.Today() {
		t.Errorf("EndDate = %s, want %s", summary.EndDate, env.clock.Today())
	}

	for _, window := range []int{0, -3} {
		if _, err := env.service.Trends(ctx, userID, window); !errors.Is(err, journal.ErrInvalidWindow) {
			t.Errorf("Trends(window=%d) error = %v, want ErrInvalidWindow", window, err)
		}
	}
}

func TestService_Calendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	grid, err := env.service.Calendar(ctx, userID)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}
	if len(grid) != 0 {
		t.Errorf("len(grid) = %d, want 0 with no entries", len(grid))
	}

	testutil.SeedEntries(t, env.store,
		testutil.Entry("a", "2024-01-03", -2),
		testutil.Entry("b", "2024-01-15", 4),
	)

	grid, err = env.service.Calendar(ctx, userID)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("len(grid) = %d, want 3 weeks", len(grid))
	}
	today := grid[0][0]
	if today.Date != env.clock.Today() || !today.HasEntry || *today.Sentiment != 4 {
		t.Errorf("grid[0][0] = %+v, want today's entry", today)
	}
	if !grid[0][1].IsFuture {
		t.Error("grid[0][1] should be in the future")
	}
}

func TestService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedEntries(t, env.store,
		testutil.Entry("a", "2024-01-02", -3, "Career", "Energy"),
		testutil.Entry("b", "2024-01-12", 1, "Career"),
		testutil.Entry("c", "2024-01-14", 3, "Family"),
	)

	avg, err := env.service.AverageSentiment(ctx, userID, 7)
	if err != nil {
		t.Fatalf("AverageSentiment() error = %v", err)
	}
	if avg != 2 {
		t.Errorf("AverageSentiment(7) = %v, want 2", avg)
	}

	tags, err := env.service.CommonTags(ctx, userID, 2)
	if err != nil {
		t.Fatalf("CommonTags() error = %v", err)
	}
	want := []analytics.TagCount{{Tag: "Career", Count: 2}, {Tag: "Energy", Count: 1}}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("CommonTags() = %v, want %v", tags, want)
	}
}

func TestService_Reflect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.Reflect(ctx, userID); !errors.Is(err, journal.ErrNoEntryToday) {
		t.Fatalf("Reflect() error = %v, want ErrNoEntryToday", err)
	}

	if _, _, err := env.service.WriteToday(ctx, userID, "Grateful for the sun."); err != nil {
		t.Fatalf("WriteToday() error = %v", err)
	}

	got, err := env.service.Reflect(ctx, userID)
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	if got != env.assistant.Reflection {
		t.Errorf("Reflect() = %q, want %q", got, env.assistant.Reflection)
	}
	calls := env.assistant.Calls()
	if calls[len(calls)-1] != "Grateful for the sun." {
		t.Errorf("prompter received %q, want today's content", calls[len(calls)-1])
	}
}

func TestService_WritingHelp(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.service.WritingHelp(context.Background(), "  half a thought  ")
	if err != nil {
		t.Fatalf("WritingHelp() error = %v", err)
	}
	if got != env.assistant.Starter {
		t.Errorf("WritingHelp() = %q, want %q", got, env.assistant.Starter)
	}
	if calls := env.assistant.Calls(); calls[0] != "half a thought" {
		t.Errorf("prompter received %q, want trimmed content", calls[0])
	}

	noPrompter := journal.NewService(env.store, env.assistant, nil, journal.NewNopLogger(), env.clock, testutil.NewStubIDGenerator())
	if _, err := noPrompter.WritingHelp(context.Background(), ""); err == nil {
		t.Error("WritingHelp() expected error without a prompter")
	}
}

func TestService_StoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	store := &failingStore{err: boom}
	svc := journal.NewService(store, testutil.NewStubAssistant(), nil, journal.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
	ctx := context.Background()

	checks := map[string]func() error{
		"Entries":  func() error { _, err := svc.Entries(ctx, userID); return err },
		"Trends":   func() error { _, err := svc.Trends(ctx, userID, 30); return err },
		"Calendar": func() error { _, err := svc.Calendar(ctx, userID); return err },
		"Today":    func() error { _, err := svc.TodayEntry(ctx, userID); return err },
		"Write":    func() error { _, _, err := svc.WriteToday(ctx, userID, "x"); return err },
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			if err := fn(); !errors.Is(err, boom) {
				t.Errorf("error = %v, want wrapped %v", err, boom)
			}
		})
	}
}
