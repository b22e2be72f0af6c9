package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"journal-go/internal/analytics"
	"journal-go/internal/model"
)

var (
	ErrEmptyContent  = errors.New("entry content is empty")
	ErrNoEntryToday  = errors.New("no entry written today")
	ErrInvalidWindow = errors.New("trend window must be at least one day")
)

// Service coordinates the entry store, the analyzer and the pure analytics
// functions on behalf of the CLI and the HTTP API.
type Service struct {
	store    EntryStore
	analyzer Analyzer
	prompter Prompter
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewService creates a Service. prompter may be nil when the writing aids are not needed.
func NewService(store EntryStore, analyzer Analyzer, prompter Prompter, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:    store,
		analyzer: analyzer,
		prompter: prompter,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Today returns the current calendar date according to the service clock.
func (s *Service) Today() model.Date {
	return model.DateOf(s.clock.Now())
}

// WriteToday analyzes content and stores it as the user's entry for today,
// replacing any entry already written today. created reports whether a new
// entry was inserted.
func (s *Service) WriteToday(ctx context.Context, userID, content string) (entry *model.Entry, created bool, err error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false, ErrEmptyContent
	}
	today := s.Today()

	var analysis model.Analysis
	var existing *model.Entry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.analyzer.Analyze(gctx, content)
		if err != nil {
			return fmt.Errorf("analyzing entry: %w", err)
		}
		analysis = a.Clamp()
		return nil
	})
	g.Go(func() error {
		e, err := s.store.GetEntryForDate(gctx, userID, today)
		if err != nil {
			return fmt.Errorf("finding today's entry: %w", err)
		}
		existing = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	now := s.clock.Now()
	if existing == nil {
		entry = &model.Entry{
			ID:        s.idgen.New(),
			UserID:    userID,
			Date:      today,
			CreatedAt: now,
		}
		created = true
	} else {
		entry = existing
	}
	entry.Content = content
	entry.Summary = analysis.Summary
	entry.SentimentScore = analysis.SentimentScore
	entry.Tags = model.NormalizeTags(analysis.Tags)
	entry.MemoryWeight = int(analysis.MemoryWeight)
	entry.UpdatedAt = now

	if err := model.ValidateEntry(entry); err != nil {
		return nil, false, err
	}

	if created {
		if err := s.store.CreateEntry(ctx, entry); err != nil {
			return nil, false, fmt.Errorf("creating entry: %w", err)
		}
		s.logger.Info("entry created", "date", today.String(), "sentiment", entry.SentimentScore)
	} else {
		if err := s.store.UpdateEntry(ctx, entry); err != nil {
			return nil, false, fmt.Errorf("updating entry: %w", err)
		}
		s.logger.Info("entry updated", "date", today.String(), "sentiment", entry.SentimentScore)
	}

	return entry, created, nil
}

// TodayEntry returns today's entry, or nil if none has been written.
func (s *Service) TodayEntry(ctx context.Context, userID string) (*model.Entry, error) {
	return s.EntryForDate(ctx, userID, s.Today())
}

// EntryForDate returns the entry for date, or nil.
func (s *Service) EntryForDate(ctx context.Context, userID string, date model.Date) (*model.Entry, error) {
	e, err := s.store.GetEntryForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("finding entry for %s: %w", date, err)
	}
	return e, nil
}

// Entries returns all of the user's entries, newest first.
func (s *Service) Entries(ctx context.Context, userID string) ([]model.Entry, error) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Trends summarizes the last windowDays days.
func (s *Service) Trends(ctx context.Context, userID string, windowDays int) (analytics.TrendSummary, error) {
	if windowDays <= 0 {
		return analytics.TrendSummary{}, ErrInvalidWindow
	}
	today := s.Today()

	entries, err := s.store.ListEntriesInRange(ctx, userID, today.AddDays(-windowDays), today)
	if err != nil {
		return analytics.TrendSummary{}, fmt.Errorf("listing entries for trends: %w", err)
	}

	s.logger.Debug("trends computed", "window_days", windowDays, "entries", len(entries))
	return analytics.ComputeTrends(entries, windowDays, today), nil
}

// Calendar returns the user's calendar grid, current week first.
func (s *Service) Calendar(ctx context.Context, userID string) ([][]analytics.DayCell, error) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for calendar: %w", err)
	}
	return analytics.BuildGrid(entries, s.Today()), nil
}

// AverageSentiment is the mean score over the last days days, or 0.
func (s *Service) AverageSentiment(ctx context.Context, userID string, days int) (float64, error) {
	today := s.Today()
	entries, err := s.store.ListEntriesInRange(ctx, userID, today.AddDays(-days), today)
	if err != nil {
		return 0, fmt.Errorf("listing entries for average: %w", err)
	}
	return analytics.AverageSentiment(entries, days, today), nil
}

// CommonTags returns the user's most used tags across all entries.
func (s *Service) CommonTags(ctx context.Context, userID string, limit int) ([]analytics.TagCount, error) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for tags: %w", err)
	}
	return analytics.CommonTags(entries, limit), nil
}

// Reflect returns a reflection prompt for today's entry.
func (s *Service) Reflect(ctx context.Context, userID string) (string, error) {
	if s.prompter == nil {
		return "", fmt.Errorf("no prompter configured")
	}
	e, err := s.TodayEntry(ctx, userID)
	if err != nil {
		return "", err
	}
	if e == nil {
		return "", ErrNoEntryToday
	}

	prompt, err := s.prompter.ReflectionPrompt(ctx, e.Content)
	if err != nil {
		return "", fmt.Errorf("generating reflection prompt: %w", err)
	}
	return prompt, nil
}

// WritingHelp suggests a way to start or continue current.
func (s *Service) WritingHelp(ctx context.Context, current string) (string, error) {
	if s.prompter == nil {
		return "", fmt.Errorf("no prompter configured")
	}
	starter, err := s.prompter.WritingStarter(ctx, strings.TrimSpace(current))
	if err != nil {
		return "", fmt.Errorf("generating writing starter: %w", err)
	}
	return starter, nil
}
