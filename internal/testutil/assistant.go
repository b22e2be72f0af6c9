package testutil

import (
	"context"
	"sync"

	"journal-go/internal/model"
)

// StubAssistant returns canned analyses and prompts and records what it was asked.
// Safe for concurrent use.
type StubAssistant struct {
	Analysis   model.Analysis
	Reflection string
	Starter    string
	Err        error

	mu    sync.Mutex
	calls []string
}

// NewStubAssistant returns a stub that scores every entry 2.0 with tag Self.
func NewStubAssistant() *StubAssistant {
	return &StubAssistant{
		Analysis: model.Analysis{
			SentimentScore: 2,
			Summary:        "A steady day.",
			Tags:           []string{"Self"},
			MemoryWeight:   3,
		},
		Reflection: "What would you like more of tomorrow?",
		Starter:    "Today I noticed...",
	}
}

func (s *StubAssistant) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

// Calls returns the inputs received, in order.
func (s *StubAssistant) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *StubAssistant) Analyze(_ context.Context, content string) (model.Analysis, error) {
	s.record(content)
	if s.Err != nil {
		return model.Analysis{}, s.Err
	}
	return s.Analysis, nil
}

func (s *StubAssistant) ReflectionPrompt(_ context.Context, content string) (string, error) {
	s.record(content)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reflection, nil
}

func (s *StubAssistant) WritingStarter(_ context.Context, current string) (string, error) {
	s.record(current)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Starter, nil
}
