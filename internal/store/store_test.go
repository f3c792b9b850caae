package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/opusfetch/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveRun(t *testing.T) {
	s := newTestStore(t)

	run := internal.ExtractionRun{
		ID:           "run-1",
		Corpus:       "Books",
		SourceLang:   "en",
		TargetLang:   "de",
		LinesWritten: 42,
		Status:       internal.RunCompleted,
		Timestamp:    time.Now(),
	}

	if err := s.SaveRun(context.Background(), run); err != nil {
		t.Errorf("SaveRun failed: %v", err)
	}
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []internal.ExtractionRun{
		{ID: "run-1", Corpus: "Books", SourceLang: "en", TargetLang: "de", LinesWritten: 10, Status: internal.RunCompleted, Timestamp: base},
		{ID: "run-2", Corpus: "ParaCrawl", SourceLang: "en", TargetLang: "de", Status: internal.RunFailed, Error: "boom", Timestamp: base.Add(time.Hour)},
	}
	for _, run := range runs {
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	got, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	// Most recent first.
	if got[0].ID != "run-2" {
		t.Errorf("expected run-2 first, got %q", got[0].ID)
	}
	if got[0].Error != "boom" {
		t.Errorf("expected error text preserved, got %q", got[0].Error)
	}
	if got[1].LinesWritten != 10 {
		t.Errorf("expected 10 lines written, got %d", got[1].LinesWritten)
	}
}

func TestStore_ClearRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := internal.ExtractionRun{
		ID: "run-1", Corpus: "Books", SourceLang: "en", TargetLang: "de",
		Status: internal.RunCompleted, Timestamp: time.Now(),
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if err := s.ClearRuns(ctx); err != nil {
		t.Fatalf("ClearRuns failed: %v", err)
	}

	got, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no runs after clear, got %d", len(got))
	}
}
