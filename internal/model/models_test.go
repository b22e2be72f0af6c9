package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestDate_ParseAndString(t *testing.T) {
	d, err := ParseDate("2024-03-06")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2024-03-06" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-03-06")
	}
	if d.Weekday() != time.Wednesday {
		t.Errorf("Weekday() = %v, want Wednesday", d.Weekday())
	}
	if d.MondayIndex() != 2 {
		t.Errorf("MondayIndex() = %d, want 2", d.MondayIndex())
	}

	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("ParseDate() expected error for invalid month")
	}
}

func TestDate_MondayIndex(t *testing.T) {
	monday := MustParseDate("2024-03-04")
	for i := 0; i < 7; i++ {
		if got := monday.AddDays(i).MondayIndex(); got != i {
			t.Errorf("%s MondayIndex() = %d, want %d", monday.AddDays(i), got, i)
		}
	}
}

func TestDate_AddDaysAcrossMonth(t *testing.T) {
	d := MustParseDate("2024-02-28")
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Errorf("AddDays(2) = %q, want %q", got, "2024-03-01")
	}
	if got := d.AddDays(-28).String(); got != "2024-01-31" {
		t.Errorf("AddDays(-28) = %q, want %q", got, "2024-01-31")
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2024-01-31")
	b := MustParseDate("2024-02-01")

	if !a.Before(b) || a.After(b) {
		t.Errorf("%s should be before %s", a, b)
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare(self) = %d, want 0", a.Compare(a))
	}
	if a != NewDate(2024, time.January, 31) {
		t.Error("dates with the same components should be equal")
	}
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	ts := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	if got := DateOf(ts).String(); got != "2024-06-01" {
		t.Errorf("DateOf() = %q, want %q", got, "2024-06-01")
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	data, err := json.Marshal(wrapper{D: MustParseDate("2024-05-05")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"d":"2024-05-05"}` {
		t.Errorf("Marshal() = %s", data)
	}

	data, _ = json.Marshal(wrapper{})
	if string(data) != `{"d":null}` {
		t.Errorf("Marshal(zero) = %s, want null date", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"d":"2023-12-31"}`), &w); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if w.D != MustParseDate("2023-12-31") {
		t.Errorf("Unmarshal() = %v", w.D)
	}
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"text", "2024-04-01", "2024-04-01"},
		{"bytes", []byte("2024-04-02"), "2024-04-02"},
		{"timestamp text", "2024-04-03T00:00:00Z", "2024-04-03"},
		{"time", time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), "2024-04-04"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %q, want %q", d.String(), tt.want)
			}
		})
	}
}

func TestAnalysis_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		in         Analysis
		wantScore  float64
		wantWeight float64
	}{
		{"in range", Analysis{SentimentScore: 2.5, MemoryWeight: 4.4}, 2.5, 4},
		{"score too high", Analysis{SentimentScore: 9, MemoryWeight: 5}, 5, 5},
		{"score too low", Analysis{SentimentScore: -12, MemoryWeight: 5}, -5, 5},
		{"weight rounds up", Analysis{MemoryWeight: 6.5}, 0, 7},
		{"weight too low", Analysis{MemoryWeight: 0}, 0, 1},
		{"weight too high", Analysis{MemoryWeight: 42}, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp()
			if got.SentimentScore != tt.wantScore {
				t.Errorf("SentimentScore = %v, want %v", got.SentimentScore, tt.wantScore)
			}
			if got.MemoryWeight != tt.wantWeight {
				t.Errorf("MemoryWeight = %v, want %v", got.MemoryWeight, tt.wantWeight)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"career", " Family ", "Work", "CAREER", "social life"})
	want := []string{"Career", "Family", "Social Life"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}

	if got := NormalizeTags(nil); len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %v, want empty", got)
	}
}

func TestValidateEntry(t *testing.T) {
	valid := func() *Entry {
		return &Entry{Date: MustParseDate("2024-01-01"), SentimentScore: 1, MemoryWeight: 5}
	}

	if err := ValidateEntry(valid()); err != nil {
		t.Fatalf("ValidateEntry() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(e *Entry)
	}{
		{"zero date", func(e *Entry) { e.Date = Date{} }},
		{"NaN score", func(e *Entry) { e.SentimentScore = math.NaN() }},
		{"infinite score", func(e *Entry) { e.SentimentScore = math.Inf(1) }},
		{"score out of range", func(e *Entry) { e.SentimentScore = 5.5 }},
		{"weight out of range", func(e *Entry) { e.MemoryWeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			if err := ValidateEntry(e); err == nil {
				t.Error("ValidateEntry() expected error")
			}
		})
	}
}

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{-5, "Very Negative"},
		{-3, "Very Negative"},
		{-2.9, "Negative"},
		{-1, "Negative"},
		{0, "Neutral"},
		{1, "Neutral"},
		{1.1, "Positive"},
		{3, "Positive"},
		{3.5, "Very Positive"},
	}

	for _, tt := range tests {
		if got := SentimentLabel(tt.score); got != tt.want {
			t.Errorf("SentimentLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSentimentTone(t *testing.T) {
	tests := []struct {
		score float64
		want  Tone
	}{
		{-5, ToneNegative},
		{-1.5, ToneNegative},
		{-1, ToneNeutral},
		{0, ToneNeutral},
		{1, ToneNeutral},
		{1.5, TonePositive},
	}

	for _, tt := range tests {
		if got := SentimentTone(tt.score); got != tt.want {
			t.Errorf("SentimentTone(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatSentiment(t *testing.T) {
	if got := FormatSentiment(2.345); got != "2.3" {
		t.Errorf("FormatSentiment() = %q, want %q", got, "2.3")
	}
	if got := FormatSentiment(-1); got != "-1.0" {
		t.Errorf("FormatSentiment() = %q, want %q", got, "-1.0")
	}
}
