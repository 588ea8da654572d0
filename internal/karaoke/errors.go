package karaoke

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHighlight reports a block whose text carries no highlight markup.
	ErrNoHighlight = errors.New("no highlight markup")
	// ErrNotFound reports a highlight that could not be matched to any
	// original line, even after the fallback search.
	ErrNotFound = errors.New("highlight not found in lyrics")
	// ErrAmbiguous reports a highlight accepted through the fallback search
	// rather than the offset check. The accompanying Match is usable.
	ErrAmbiguous = errors.New("highlight matched with low confidence")
)

// MatchError describes a failed or low-confidence line match.
type MatchError struct {
	Err  error
	Text string
	// Line is the line that was searched, or -1 when none could be located.
	Line int
	// Candidates counts fallback occurrences found in Line.
	Candidates int
}

func (e *MatchError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%v: %q", e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %q in line %d (%d candidates)", e.Err, e.Text, e.Line, e.Candidates)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
