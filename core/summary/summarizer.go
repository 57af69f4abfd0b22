// Package summary bridges the work log to the external text-generation
// service, turning a window of entries into natural-language prose.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/aw/core/generate"
	"github.com/adalundhe/aw/core/worklog"
)

// ErrSummaryGeneration wraps failures from the generation provider. There
// is no meaningful partial result, so it propagates as a hard error.
var ErrSummaryGeneration = errors.New("summary generation failed")

// MaxEntries caps how many entries feed one summary prompt.
const MaxEntries = 500

// EmptySentinel is returned when no entries match the window; the provider
// is not contacted in that case.
const EmptySentinel = "No work entries found for the selected period."

// Options selects the entries to summarize.
type Options struct {
	DaysBack    int
	Category    string
	ProjectName string
}

// Summary is the assembled result.
type Summary struct {
	Text       string `json:"summary"`
	EntryCount int    `json:"entryCount"`
	DaysBack   int    `json:"daysBack"`
}

// Orchestrator formats entries into a prompt and delegates generation.
type Orchestrator struct {
	store    *worklog.Store
	provider generate.Provider
}

// New builds an orchestrator over the given store and provider.
func New(store *worklog.Store, provider generate.Provider) *Orchestrator {
	return &Orchestrator{store: store, provider: provider}
}

// Summarize fetches matching entries and streams a summary from the
// provider, concatenating fragments in arrival order.
func (o *Orchestrator) Summarize(ctx context.Context, opts Options) (Summary, error) {
	result, err := o.store.Query(ctx, worklog.Filter{
		DaysBack:    opts.DaysBack,
		Category:    opts.Category,
		ProjectName: opts.ProjectName,
		Limit:       MaxEntries,
	})
	if err != nil {
		return Summary{}, err
	}

	if len(result.Entries) == 0 {
		return Summary{Text: EmptySentinel, EntryCount: 0, DaysBack: opts.DaysBack}, nil
	}

	var sb strings.Builder
	if err := o.provider.StreamWithHandler(ctx, buildPrompt(result.Entries, opts.DaysBack), func(fragment string) error {
		sb.WriteString(fragment)
		return nil
	}); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrSummaryGeneration, err)
	}

	return Summary{
		Text:       strings.TrimSpace(sb.String()),
		EntryCount: len(result.Entries),
		DaysBack:   opts.DaysBack,
	}, nil
}

// buildPrompt renders one line per entry plus fixed instructional framing:
// a short overview, a separator, then thematic detail, with no title.
func buildPrompt(entries []worklog.Entry, daysBack int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The following is a log of completed work from the last %d days, one entry per line:\n\n", daysBack)
	for _, entry := range entries {
		sb.WriteString(formatEntryLine(entry))
		sb.WriteByte('\n')
	}
	sb.WriteString(`
Summarize this work in two parts: first a short overview paragraph, then a
line containing only "---", then more detail grouped by theme. Do not prepend
a title; start directly with the overview.`)
	return sb.String()
}

func formatEntryLine(entry worklog.Entry) string {
	var parts []string

	if eventTime, err := entry.EventTime(); err == nil {
		parts = append(parts, eventTime.Local().Format("Jan 2, 2006"))
	} else {
		parts = append(parts, entry.Timestamp)
	}
	if entry.ProjectName != "" {
		parts = append(parts, "["+entry.ProjectName+"]")
	}
	if entry.Category != "" {
		parts = append(parts, "("+entry.Category+")")
	}
	parts = append(parts, entry.Description)

	return "- " + strings.Join(parts, " ")
}
