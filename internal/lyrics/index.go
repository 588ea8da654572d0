package lyrics

import (
	"errors"
	"sort"
	"strings"

	"karaokesync/internal/textutil"
)

// SeparatorWidth is the number of characters assumed between two consecutive
// lines of the flattened transcript.
const SeparatorWidth = 1

// Separator is the character CleanText places between lines. Its width must
// equal SeparatorWidth.
const Separator = " "

// ErrNotFound is returned when an offset cannot be attributed to any line.
var ErrNotFound = errors.New("no original line for offset")

// Line is one line of the original lyric file.
type Line struct {
	Index       int
	Raw         string
	Normalized  string
	StartOffset int
	Length      int
}

// Index is the immutable offset table over a lyric file's lines. It is safe
// for concurrent use once built.
type Index struct {
	lines []Line
}

// Build normalizes every line and computes its start offset. An empty input
// yields an empty index.
func Build(raw []string) *Index {
	lines := make([]Line, len(raw))
	offset := 0
	for i, text := range raw {
		normalized := textutil.CollapseWhitespace(text)
		length := textutil.RuneLen(normalized)
		lines[i] = Line{
			Index:       i,
			Raw:         text,
			Normalized:  normalized,
			StartOffset: offset,
			Length:      length,
		}
		offset += length + SeparatorWidth
	}
	return &Index{lines: lines}
}

// Len returns the number of indexed lines.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.lines)
}

// Line returns the i-th line. ok is false when i is out of range.
func (x *Index) Line(i int) (Line, bool) {
	if x == nil || i < 0 || i >= len(x.lines) {
		return Line{}, false
	}
	return x.lines[i], true
}

// Normalized returns the normalized text of every line in order.
func (x *Index) Normalized() []string {
	out := make([]string, x.Len())
	for i := range out {
		out[i] = x.lines[i].Normalized
	}
	return out
}

// TotalLength is the length of CleanText in runes.
func (x *Index) TotalLength() int {
	if x.Len() == 0 {
		return 0
	}
	last := x.lines[len(x.lines)-1]
	return last.StartOffset + last.Length
}

// CleanText flattens the normalized lines into the transcript an aligner must
// consume for its offsets to agree with this index.
func (x *Index) CleanText() string {
	return strings.Join(x.Normalized(), Separator)
}

// Locate returns the index of the line containing offset.
//
// An offset inside a line's text belongs to that line. The separator position
// right after a non-blank line belongs to the following line, or to the last
// line when there is none. A blank line owns its own zero-length slot. Offsets
// past the end clamp to the last line. An empty index, or a negative offset,
// yields ErrNotFound.
func (x *Index) Locate(offset int) (int, error) {
	n := x.Len()
	if n == 0 || offset < 0 {
		return -1, ErrNotFound
	}
	// Last line whose start is at or before offset.
	i := sort.Search(n, func(i int) bool {
		return x.lines[i].StartOffset > offset
	}) - 1
	if i < 0 {
		return -1, ErrNotFound
	}
	line := x.lines[i]
	end := line.StartOffset + line.Length
	switch {
	case offset < end:
		return i, nil
	case offset == end && line.Length == 0:
		return i, nil
	case i < n-1:
		return i + 1, nil
	default:
		return n - 1, nil
	}
}
