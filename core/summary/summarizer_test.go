package summary

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adalundhe/aw/core/generate"
	"github.com/adalundhe/aw/core/worklog"
)

// fakeProvider records the prompt it receives and emits canned fragments.
type fakeProvider struct {
	fragments []string
	err       error
	called    bool
	prompt    string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) StreamWithHandler(ctx context.Context, prompt string, handler generate.Handler) error {
	f.called = true
	f.prompt = prompt
	if f.err != nil {
		return f.err
	}
	for _, fragment := range f.fragments {
		if err := handler(fragment); err != nil {
			return err
		}
	}
	return nil
}

func openSeededStore(t *testing.T, entries []worklog.Entry) *worklog.Store {
	t.Helper()
	store, err := worklog.Open(filepath.Join(t.TempDir(), "worklog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, e := range entries {
		if _, err := store.Append(context.Background(), e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return store
}

func TestSummarizeEmptyWindowSkipsProvider(t *testing.T) {
	store := openSeededStore(t, nil)
	provider := &fakeProvider{}

	result, err := New(store, provider).Summarize(context.Background(), Options{DaysBack: 7})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if result.Text != EmptySentinel {
		t.Errorf("expected sentinel, got %q", result.Text)
	}
	if result.EntryCount != 0 || result.DaysBack != 7 {
		t.Errorf("unexpected result: %+v", result)
	}
	if provider.called {
		t.Error("provider must not be contacted for an empty window")
	}
}

func TestSummarizeConcatenatesAndTrims(t *testing.T) {
	store := openSeededStore(t, []worklog.Entry{
		{Description: "Fixed login race", Category: "bugfix", ProjectName: "portal", WorkingDirectory: "/tmp"},
	})
	provider := &fakeProvider{fragments: []string{"  Overview of work.", "\n---\n", "Details.  \n"}}

	result, err := New(store, provider).Summarize(context.Background(), Options{DaysBack: 7})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if result.Text != "Overview of work.\n---\nDetails." {
		t.Errorf("fragments not concatenated/trimmed: %q", result.Text)
	}
	if result.EntryCount != 1 {
		t.Errorf("expected entryCount 1, got %d", result.EntryCount)
	}
}

func TestSummarizePromptContents(t *testing.T) {
	store := openSeededStore(t, []worklog.Entry{
		{Description: "Added export endpoint", Category: "feature", ProjectName: "portal", WorkingDirectory: "/tmp"},
	})
	provider := &fakeProvider{fragments: []string{"ok"}}

	if _, err := New(store, provider).Summarize(context.Background(), Options{DaysBack: 7}); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	for _, want := range []string{"Added export endpoint", "[portal]", "(feature)", "Do not prepend\na title"} {
		if !strings.Contains(provider.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, provider.prompt)
		}
	}
}

func TestSummarizePropagatesProviderFailure(t *testing.T) {
	store := openSeededStore(t, []worklog.Entry{
		{Description: "task", WorkingDirectory: "/tmp"},
	})
	provider := &fakeProvider{err: errors.New("upstream unavailable")}

	_, err := New(store, provider).Summarize(context.Background(), Options{DaysBack: 7})
	if !errors.Is(err, ErrSummaryGeneration) {
		t.Errorf("expected ErrSummaryGeneration, got %v", err)
	}
}

func TestSummarizeRespectsFilters(t *testing.T) {
	old := time.Now().UTC().AddDate(0, 0, -30).Format(worklog.TimestampLayout)
	store := openSeededStore(t, []worklog.Entry{
		{Description: "recent work", Category: "feature", WorkingDirectory: "/tmp"},
		{Timestamp: old, Description: "ancient work", Category: "feature", WorkingDirectory: "/tmp"},
	})
	provider := &fakeProvider{fragments: []string{"ok"}}

	result, err := New(store, provider).Summarize(context.Background(), Options{DaysBack: 7})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if result.EntryCount != 1 {
		t.Errorf("expected 1 entry in window, got %d", result.EntryCount)
	}
	if strings.Contains(provider.prompt, "ancient work") {
		t.Error("out-of-window entry leaked into prompt")
	}
}
