package worklog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "worklog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndQueryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Append(ctx, Entry{
		Description:      "Implemented retry logic",
		Category:         "feature",
		SessionID:        "sess-1",
		ProjectName:      "aw",
		GitBranch:        "main",
		WorkingDirectory: "/tmp/project",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	result, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got total=%d len=%d", result.Total, len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.Description != "Implemented retry logic" {
		t.Errorf("description mismatch: %q", entry.Description)
	}
	if entry.Category != "feature" {
		t.Errorf("category mismatch: %q", entry.Category)
	}
	if entry.SessionID != "sess-1" || entry.ProjectName != "aw" || entry.GitBranch != "main" {
		t.Errorf("metadata mismatch: %+v", entry)
	}
	if entry.CreatedAt == 0 {
		t.Error("createdAt should be assigned by the store")
	}
	if _, err := entry.EventTime(); err != nil {
		t.Errorf("timestamp not in wire format: %q", entry.Timestamp)
	}
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := store.Append(ctx, Entry{Description: "task", WorkingDirectory: "/tmp"})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if id <= last {
			t.Fatalf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
}

func TestAppendRejectsInvalidEntries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, Entry{WorkingDirectory: "/tmp"}); err == nil {
		t.Error("expected error for empty description")
	}
	if _, err := store.Append(ctx, Entry{Description: "task"}); err == nil {
		t.Error("expected error for empty working directory")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := store.Append(context.Background(), Entry{Description: "task", WorkingDirectory: "/tmp"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	store.Close()

	// Reopening must skip DDL and keep existing rows.
	store, err = Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store.Close()

	result, err := store.Query(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("expected 1 surviving entry, got %d", result.Total)
	}
}

func TestQueryEmptyStore(t *testing.T) {
	store := openTestStore(t)

	result, err := store.Query(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("expected total=0, got %d", result.Total)
	}
	if result.Entries == nil || len(result.Entries) != 0 {
		t.Errorf("expected empty non-nil entries, got %#v", result.Entries)
	}
}

func TestCategoryFilterOrderingAndTotal(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-3 * time.Hour)
	descriptions := []struct {
		desc     string
		category string
	}{
		{"Task 1", "feature"},
		{"Task 2", "bugfix"},
		{"Task 3", "feature"},
	}
	for i, d := range descriptions {
		_, err := store.Append(ctx, Entry{
			Timestamp:        base.Add(time.Duration(i) * time.Hour).Format(TimestampLayout),
			Description:      d.desc,
			Category:         d.category,
			WorkingDirectory: "/tmp",
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	result, err := store.Query(ctx, Filter{Category: "feature"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected total=2, got %d", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Description != "Task 3" || result.Entries[1].Description != "Task 1" {
		t.Errorf("expected Task 3 then Task 1, got %q then %q",
			result.Entries[0].Description, result.Entries[1].Description)
	}
}

func TestFilterComposition(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := []Entry{
		{Description: "a1", Category: "A", ProjectName: "P", WorkingDirectory: "/tmp"},
		{Description: "a2", Category: "A", ProjectName: "P", WorkingDirectory: "/tmp"},
		{Description: "b1", Category: "B", ProjectName: "Q", WorkingDirectory: "/tmp"},
	}
	for _, e := range seed {
		if _, err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	result, err := store.Query(ctx, Filter{Category: "A"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("category A: expected 2 matches, got %d", result.Total)
	}

	result, err = store.Query(ctx, Filter{Category: "A", ProjectName: "Q"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 0 || len(result.Entries) != 0 {
		t.Errorf("A+Q: expected empty set, got total=%d len=%d", result.Total, len(result.Entries))
	}
}

func TestDaysBackBoundary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := store.Append(ctx, Entry{
		Timestamp:        now.AddDate(0, 0, -8).Format(TimestampLayout),
		Description:      "too old",
		WorkingDirectory: "/tmp",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	_, err = store.Append(ctx, Entry{
		Timestamp:        now.AddDate(0, 0, -6).Format(TimestampLayout),
		Description:      "in window",
		WorkingDirectory: "/tmp",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	result, err := store.Query(ctx, Filter{DaysBack: 7})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 1 || result.Entries[0].Description != "in window" {
		t.Errorf("expected only the in-window entry, got %+v", result.Entries)
	}
}

func TestPagination(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := store.Append(ctx, Entry{
			Timestamp:        base.Add(time.Duration(i) * time.Minute).Format(TimestampLayout),
			Description:      "task",
			WorkingDirectory: "/tmp",
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	result, err := store.Query(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Total != 5 {
		t.Errorf("total should ignore pagination, got %d", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Errorf("expected page of 2, got %d", len(result.Entries))
	}
}

func TestDistinctValues(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := []Entry{
		{Description: "t", Category: "feature", ProjectName: "aw", WorkingDirectory: "/tmp"},
		{Description: "t", Category: "feature", ProjectName: "aw", WorkingDirectory: "/tmp"},
		{Description: "t", Category: "bugfix", WorkingDirectory: "/tmp"},
		{Description: "t", WorkingDirectory: "/tmp"},
	}
	for _, e := range seed {
		if _, err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	categories, err := store.DistinctCategories(ctx)
	if err != nil {
		t.Fatalf("DistinctCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %v", categories)
	}

	projects, err := store.DistinctProjects(ctx)
	if err != nil {
		t.Fatalf("DistinctProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0] != "aw" {
		t.Errorf("expected [aw], got %v", projects)
	}
}

func TestRecentLimitsResults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := store.Append(ctx, Entry{Description: "task", WorkingDirectory: "/tmp"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 7, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
