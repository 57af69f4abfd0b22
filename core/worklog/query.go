package worklog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// Filters
// =============================================================================

// DefaultLimit is the page size applied when a filter leaves Limit unset.
const DefaultLimit = 50

// Filter selects entries for a query. All provided fields combine with
// logical AND. DaysBack is measured backward from the wall clock at query
// time, so the same filter yields a rolling window across calls.
type Filter struct {
	Limit       int
	Offset      int
	Category    string
	ProjectName string
	SessionID   string
	DaysBack    int
}

// QueryResult holds one page of entries plus the total match count before
// pagination.
type QueryResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.ProjectName != "" {
		conds = append(conds, "project_name = ?")
		args = append(args, f.ProjectName)
	}
	if f.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.DaysBack > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -f.DaysBack).Format(TimestampLayout)
		conds = append(conds, "timestamp >= ?")
		args = append(args, cutoff)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// =============================================================================
// Queries
// =============================================================================

// Query returns one page of matching entries, most recent first, with ties
// broken by id so ordering is deterministic.
func (s *Store) Query(ctx context.Context, filter Filter) (QueryResult, error) {
	where, args := filter.where()

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries"+where, args...).Scan(&total); err != nil {
		return QueryResult{}, fmt.Errorf("count entries: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, timestamp, description, session_id, category, project_name, git_branch, working_directory, created_at
FROM entries`+where+`
ORDER BY timestamp DESC, id DESC
LIMIT ? OFFSET ?`, pageArgs...)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return QueryResult{}, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("iterate entries: %w", err)
	}

	return QueryResult{Entries: entries, Total: total}, nil
}

// Recent returns up to limit entries from the trailing daysBack window,
// most recent first. Used by the summary path.
func (s *Store) Recent(ctx context.Context, daysBack, limit int) ([]Entry, error) {
	result, err := s.Query(ctx, Filter{DaysBack: daysBack, Limit: limit})
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// DistinctCategories returns every non-null category value once.
func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// DistinctProjects returns every non-null project name once.
func (s *Store) DistinctProjects(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "project_name")
}

func (s *Store) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM entries WHERE %s IS NOT NULL", column, column))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var sessionID, category, projectName, gitBranch sql.NullString
	if err := rows.Scan(
		&entry.ID,
		&entry.Timestamp,
		&entry.Description,
		&sessionID,
		&category,
		&projectName,
		&gitBranch,
		&entry.WorkingDirectory,
		&entry.CreatedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.SessionID = sessionID.String
	entry.Category = category.String
	entry.ProjectName = projectName.String
	entry.GitBranch = gitBranch.String
	return entry, nil
}
