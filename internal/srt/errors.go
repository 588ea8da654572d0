package srt

import (
	"errors"
	"fmt"
)

// ErrFormat marks input whose structure does not match the block grammar.
var ErrFormat = errors.New("timed-text format error")

// FormatError reports why an input stream could not be parsed at all.
// Line is the 1-based line of the first malformed block, or 0 if unknown.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrFormat, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
}

// Is lets errors.Is(err, ErrFormat) match any *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
