package therapy

import (
	"context"
	"errors"
	"testing"

	"mindwell/internal/emotion"
)

type staticSource struct {
	docs []Document
	err  error
}

func (s *staticSource) Documents(ctx context.Context) ([]Document, error) {
	return s.docs, s.err
}

func TestRetrieveFallbackForAnxious(t *testing.T) {
	retriever := NewRetriever(nil)
	resources := retriever.Retrieve(context.Background(), "so worried", emotion.Anxious, 3)
	if len(resources) != 2 {
		t.Fatalf("expected 2 fallback resources, got %d", len(resources))
	}
	if resources[0].Title != "Deep Breathing Exercise" {
		t.Fatalf("expected Deep Breathing Exercise first, got %q", resources[0].Title)
	}
}

func TestRetrieveGenericFallbackForUnknownEmotion(t *testing.T) {
	retriever := NewRetriever(nil)
	resources := retriever.Retrieve(context.Background(), "fine", emotion.Happy, 3)
	if len(resources) != 2 {
		t.Fatalf("expected 2 generic resources, got %d", len(resources))
	}
	if resources[0].Title != "Mindfulness Meditation" {
		t.Fatalf("expected Mindfulness Meditation first, got %q", resources[0].Title)
	}
}

func TestRetrieveFiltersDocumentsByEmotion(t *testing.T) {
	source := &staticSource{docs: []Document{
		{Title: "Sleep Hygiene", Content: "general advice", Summary: "sleep better"},
		{Title: "Managing Anxious Thoughts", Content: "CBT techniques", Summary: "thought challenging"},
		{Title: "Daily Walks", Content: "helps when anxious", Summary: "movement"},
		{Title: "More Anxious Reading", Content: "extra", Summary: "extra"},
	}}

	retriever := NewRetriever(source)
	resources := retriever.Retrieve(context.Background(), "worried sick", emotion.Anxious, 2)
	if len(resources) != 2 {
		t.Fatalf("expected limit of 2 matched documents, got %d", len(resources))
	}
	if resources[0].Title != "Managing Anxious Thoughts" {
		t.Fatalf("expected first matching document, got %q", resources[0].Title)
	}
	if resources[1].Summary != "movement" {
		t.Fatalf("expected documents in collection order, got %q", resources[1].Summary)
	}
}

func TestRetrieveFallsBackWhenNoDocumentMatches(t *testing.T) {
	source := &staticSource{docs: []Document{
		{Title: "Sleep Hygiene", Content: "general advice", Summary: "sleep better"},
	}}

	retriever := NewRetriever(source)
	resources := retriever.Retrieve(context.Background(), "down all week", emotion.Sad, 3)
	if len(resources) != 2 {
		t.Fatalf("expected 2 fallback resources, got %d", len(resources))
	}
	if resources[0].Title != "Behavioral Activation" {
		t.Fatalf("expected Behavioral Activation first, got %q", resources[0].Title)
	}
}

func TestRetrieveSwallowsSourceErrors(t *testing.T) {
	source := &staticSource{err: errors.New("disk gone")}

	retriever := NewRetriever(source)
	resources := retriever.Retrieve(context.Background(), "furious", emotion.Angry, 3)
	if len(resources) != 2 {
		t.Fatalf("expected fallback resources on source error, got %d", len(resources))
	}
	if resources[0].Title != "Time-Out Strategy" {
		t.Fatalf("expected Time-Out Strategy first, got %q", resources[0].Title)
	}
}
