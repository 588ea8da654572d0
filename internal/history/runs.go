package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no run matches the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one recorded invocation.
type Run struct {
	ID             string
	Command        string
	InputPath      string
	LyricsPath     string
	OutputPath     string
	DisplayMode    string
	HighlightStyle string
	StartedAt      time.Time
	Duration       time.Duration
	Total          int
	Reconstructed  int
	Ambiguous      int
	Passthrough    int
	Dropped        int
	Malformed      int
	// ErrorMessage is set when the run aborted.
	ErrorMessage string
}

// Failed reports whether the run aborted.
func (r Run) Failed() bool {
	return r.ErrorMessage != ""
}

// NewRunID returns an identifier shared by a run's log lines and its ledger row.
func NewRunID() string {
	return uuid.NewString()
}

// timeLayout has a fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z"

const runColumns = "id, command, input_path, lyrics_path, output_path, display_mode, highlight_style, started_at, duration_ms, total_blocks, reconstructed, ambiguous, passthrough, dropped, malformed, error_message"

// Record inserts run, assigning an ID and start time when they are unset.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("record run: nil run")
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Command,
		run.InputPath,
		nullableString(run.LyricsPath),
		nullableString(run.OutputPath),
		nullableString(run.DisplayMode),
		nullableString(run.HighlightStyle),
		run.StartedAt.Format(timeLayout),
		run.Duration.Milliseconds(),
		run.Total,
		run.Reconstructed,
		run.Ambiguous,
		run.Passthrough,
		run.Dropped,
		run.Malformed,
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns the run whose ID equals id or starts with it. A prefix that
// matches several runs is rejected.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 2",
		id, stripWildcards(id)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == id {
			return run, nil
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	default:
		return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// Clear deletes every run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run          Run
		lyricsPath   sql.NullString
		outputPath   sql.NullString
		displayMode  sql.NullString
		style        sql.NullString
		startedRaw   string
		durationMS   int64
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Command,
		&run.InputPath,
		&lyricsPath,
		&outputPath,
		&displayMode,
		&style,
		&startedRaw,
		&durationMS,
		&run.Total,
		&run.Reconstructed,
		&run.Ambiguous,
		&run.Passthrough,
		&run.Dropped,
		&run.Malformed,
		&errorMessage,
	); err != nil {
		return Run{}, err
	}
	run.LyricsPath = lyricsPath.String
	run.OutputPath = outputPath.String
	run.DisplayMode = displayMode.String
	run.HighlightStyle = style.String
	run.ErrorMessage = errorMessage.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if started, err := time.Parse(timeLayout, startedRaw); err == nil {
		run.StartedAt = started
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// stripWildcards removes LIKE wildcards from a user-supplied prefix.
func stripWildcards(value string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(value)
}
