package server

import (
	"context"
	"errors"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"journal-go/internal/testutil"
)

func TestMetrics_InstrumentAnalyzer(t *testing.T) {
	m := NewMetrics()
	stub := testutil.NewStubAssistant()
	analyzer := m.InstrumentAnalyzer(stub)

	if _, err := analyzer.Analyze(context.Background(), "fine"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	stub.Err = errors.New("boom")
	if _, err := analyzer.Analyze(context.Background(), "not fine"); err == nil {
		t.Fatal("Analyze() error = nil, want the stub's error")
	}

	if got := promtest.ToFloat64(m.AnalysisFailures); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := promtest.CollectAndCount(m.AnalysisDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestMetrics_RecordWrite(t *testing.T) {
	m := NewMetrics()
	m.RecordWrite(true)
	m.RecordWrite(false)
	m.RecordWrite(false)

	if got := promtest.ToFloat64(m.EntriesWritten.WithLabelValues("created")); got != 1 {
		t.Errorf("created = %v, want 1", got)
	}
	if got := promtest.ToFloat64(m.EntriesWritten.WithLabelValues("updated")); got != 2 {
		t.Errorf("updated = %v, want 2", got)
	}
}
