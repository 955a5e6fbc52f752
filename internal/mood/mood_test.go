package mood

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestRecordEmotionRejectsOutOfRangeIntensity(t *testing.T) {
	service := NewService(nil)

	for _, intensity := range []float64{-0.1, 1.01, 5} {
		_, err := service.RecordEmotion(context.Background(), 1, "sad", intensity)
		if !errors.Is(err, ErrInvalidIntensity) {
			t.Fatalf("expected ErrInvalidIntensity for %v, got %v", intensity, err)
		}
	}
}

func TestRecordEmotionRequiresLabel(t *testing.T) {
	service := NewService(nil)

	_, err := service.RecordEmotion(context.Background(), 1, "", 0.5)
	if err == nil {
		t.Fatal("expected error for empty emotion label")
	}
}

func TestSummarizeGroupsByDayAndEmotion(t *testing.T) {
	day1 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 26, 21, 30, 0, 0, time.UTC)

	records := []Record{
		{Emotion: "sad", Intensity: 0.8, CreatedAt: day1},
		{Emotion: "sad", Intensity: 0.5, CreatedAt: day1.Add(3 * time.Hour)},
		{Emotion: "calm", Intensity: 0.3, CreatedAt: day1},
		{Emotion: "sad", Intensity: 0.2, CreatedAt: day2},
	}

	summary := summarize(records)

	if len(summary) != 2 {
		t.Fatalf("expected 2 days in summary, got %d", len(summary))
	}
	if math.Abs(summary["2026-08-25"]["sad"]-1.3) > 1e-9 {
		t.Fatalf("expected summed sad intensity 1.3 on first day, got %v", summary["2026-08-25"]["sad"])
	}
	if math.Abs(summary["2026-08-25"]["calm"]-0.3) > 1e-9 {
		t.Fatalf("expected calm intensity 0.3 on first day, got %v", summary["2026-08-25"]["calm"])
	}
	if math.Abs(summary["2026-08-26"]["sad"]-0.2) > 1e-9 {
		t.Fatalf("expected sad intensity 0.2 on second day, got %v", summary["2026-08-26"]["sad"])
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	summary := summarize(nil)
	if len(summary) != 0 {
		t.Fatalf("expected empty summary, got %v", summary)
	}
}
