package karaoke

import (
	"fmt"
	"unicode"

	"karaokesync/internal/lyrics"
	"karaokesync/internal/textutil"
)

// Match places a highlight inside an original line.
type Match struct {
	Line int
	// Offset is the rune position of the highlight within the line's
	// normalized text.
	Offset int
	// Length is the rune length of the matched window.
	Length int
}

// Locate maps a highlight at globalOffset in the flattened transcript to an
// original line.
//
// The line containing globalOffset is checked first; a blank line defers to
// the next non-blank one. The window at the relative offset, sized by the
// highlight's rune length, must equal the highlight once whitespace, width and
// case are folded. When it does not, the window is retried past the
// highlight's leading whitespace with its collapsed length, then the
// highlight is searched for anywhere in the line. A single hit, or the hit
// nearest the expected position when there are several, is returned together
// with an ErrAmbiguous MatchError. No hit, or no line for the offset, yields
// ErrNotFound.
func Locate(index *lyrics.Index, globalOffset int, plain string) (Match, error) {
	text := textutil.CollapseWhitespace(plain)
	if text == "" {
		return Match{}, &MatchError{Err: ErrNotFound, Text: plain, Line: -1}
	}

	lineIdx, err := index.Locate(globalOffset)
	if err != nil {
		return Match{}, &MatchError{Err: fmt.Errorf("%w: %w", ErrNotFound, err), Text: text, Line: -1}
	}
	lineIdx = nextNonBlank(index, lineIdx)
	line, _ := index.Line(lineIdx)
	rel := globalOffset - line.StartOffset

	if match, ok := verifyWindow(line, rel, textutil.RuneLen(plain), plain); ok {
		match.Line = lineIdx
		return match, nil
	}
	lead := leadingSpaces(plain)
	if match, ok := verifyWindow(line, rel+lead, textutil.RuneLen(text), plain); ok {
		match.Line = lineIdx
		return match, nil
	}

	hits := textutil.IndexAllFold(line.Normalized, text)
	if len(hits) == 0 {
		return Match{}, &MatchError{Err: ErrNotFound, Text: text, Line: lineIdx}
	}
	match := Match{Line: lineIdx, Offset: textutil.Nearest(hits, rel+lead), Length: textutil.RuneLen(text)}
	return match, &MatchError{Err: ErrAmbiguous, Text: text, Line: lineIdx, Candidates: len(hits)}
}

// nextNonBlank returns i, or the first non-blank line after it when line i is
// blank. A blank tail keeps i.
func nextNonBlank(index *lyrics.Index, i int) int {
	line, ok := index.Line(i)
	if !ok || line.Length > 0 {
		return i
	}
	for j := i + 1; j < index.Len(); j++ {
		if next, _ := index.Line(j); next.Length > 0 {
			return j
		}
	}
	return i
}

// verifyWindow compares the size runes of the line at rel with plain. The
// returned window drops surrounding whitespace plain does not carry itself,
// so splicing never eats a separator.
func verifyWindow(line lyrics.Line, rel, size int, plain string) (Match, bool) {
	if rel < 0 || size <= 0 || rel+size > line.Length {
		return Match{}, false
	}
	window := textutil.Slice(line.Normalized, rel, rel+size)
	if !textutil.EqualFold(window, plain) {
		return Match{}, false
	}
	if leadingSpaces(plain) == 0 {
		n := leadingSpaces(window)
		rel += n
		size -= n
		window = textutil.Slice(window, n, textutil.RuneLen(window))
	}
	if trailingSpaces(plain) == 0 {
		size -= trailingSpaces(window)
	}
	return Match{Offset: rel, Length: size}, true
}

func leadingSpaces(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func trailingSpaces(s string) int {
	runes := []rune(s)
	n := 0
	for i := len(runes) - 1; i >= 0 && unicode.IsSpace(runes[i]); i-- {
		n++
	}
	return n
}
