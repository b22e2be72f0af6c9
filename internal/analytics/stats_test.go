package analytics

import (
	"reflect"
	"testing"

	"journal-go/internal/model"
)

func TestAverageSentiment(t *testing.T) {
	today := model.MustParseDate("2024-03-15")
	entries := []model.Entry{
		entry("2024-03-01", -5),
		entry("2024-03-08", 1),
		entry("2024-03-14", 3),
	}

	if got := AverageSentiment(entries, 7, today); got != 2 {
		t.Errorf("AverageSentiment(7) = %v, want 2", got)
	}
	if got := AverageSentiment(entries, 30, today); !approxEqual(got, -0.3333) {
		t.Errorf("AverageSentiment(30) = %v, want ~-0.333", got)
	}
	if got := AverageSentiment(nil, 7, today); got != 0 {
		t.Errorf("AverageSentiment(nil) = %v, want 0", got)
	}
}

func TestCommonTags(t *testing.T) {
	entries := []model.Entry{
		entry("2024-03-01", 0, "Self", "Career"),
		entry("2024-03-02", 0, "Career"),
		entry("2024-03-03", 0, "Career", "Family"),
		entry("2024-03-04", 0, "Self"),
		entry("2024-03-05", 0),
	}

	t.Run("sorted by count then name", func(t *testing.T) {
		got := CommonTags(entries, 0)
		want := []TagCount{
			{Tag: "Career", Count: 3},
			{Tag: "Self", Count: 2},
			{Tag: "Family", Count: 1},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("CommonTags() = %v, want %v", got, want)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		got := CommonTags(entries, 1)
		if len(got) != 1 || got[0].Tag != "Career" {
			t.Errorf("CommonTags(1) = %v, want [Career]", got)
		}
	})

	t.Run("no entries", func(t *testing.T) {
		if got := CommonTags(nil, 10); len(got) != 0 {
			t.Errorf("CommonTags(nil) = %v, want empty", got)
		}
	})
}
