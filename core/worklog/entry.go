// Package worklog provides the sqlite-backed store for completed work entries.
package worklog

import (
	"errors"
	"time"
)

// =============================================================================
// Errors
// =============================================================================

// Common errors returned by Store operations.
var (
	ErrInvalidEntry     = errors.New("invalid entry")
	ErrStoreUnavailable = errors.New("work log store unavailable")
)

// =============================================================================
// Entry
// =============================================================================

// TimestampLayout is the wire format for event timestamps: ISO-8601 with
// millisecond precision and the UTC designator.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Entry is one completed unit of work. Entries are immutable once appended.
type Entry struct {
	ID               int64  `json:"id"`
	Timestamp        string `json:"timestamp"`
	Description      string `json:"description"`
	SessionID        string `json:"sessionId,omitempty"`
	Category         string `json:"category,omitempty"`
	ProjectName      string `json:"projectName,omitempty"`
	GitBranch        string `json:"gitBranch,omitempty"`
	WorkingDirectory string `json:"workingDirectory"`
	CreatedAt        int64  `json:"createdAt"`
}

// Now returns the current moment formatted as an entry timestamp.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// EventTime parses the entry's event timestamp.
func (e *Entry) EventTime() (time.Time, error) {
	return time.Parse(TimestampLayout, e.Timestamp)
}
