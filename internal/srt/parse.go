package srt

import (
	"strconv"
	"strings"
	"time"
)

// Block is one timed-text entry. Blocks are read-only once parsed.
type Block struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result carries the blocks recovered from a stream together with the blocks
// that had to be skipped because they did not match the grammar.
type Result struct {
	Blocks  []Block
	Skipped []*FormatError
}

// Parse scans content into blocks. Blank or whitespace-only content yields an
// empty result. Individually malformed blocks are skipped and reported in
// Result.Skipped; if content is not blank and no block matches the grammar at
// all, Parse returns a *FormatError.
func Parse(content string) (Result, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var result Result
	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	s := scanner{lines: strings.Split(content, "\n")}
	for s.skipBlank() {
		block, ferr := s.block()
		if ferr != nil {
			result.Skipped = append(result.Skipped, ferr)
			s.skipToBlank()
			continue
		}
		result.Blocks = append(result.Blocks, block)
	}

	if len(result.Blocks) == 0 {
		if len(result.Skipped) > 0 {
			first := result.Skipped[0]
			return result, &FormatError{Line: first.Line, Reason: "no block matches the timed-text grammar: " + first.Reason}
		}
		return result, &FormatError{Reason: "no block matches the timed-text grammar"}
	}
	return result, nil
}

type scanner struct {
	lines []string
	pos   int
}

// skipBlank advances past blank lines and reports whether input remains.
func (s *scanner) skipBlank() bool {
	for s.pos < len(s.lines) && isBlank(s.lines[s.pos]) {
		s.pos++
	}
	return s.pos < len(s.lines)
}

func (s *scanner) skipToBlank() {
	for s.pos < len(s.lines) && !isBlank(s.lines[s.pos]) {
		s.pos++
	}
}

func (s *scanner) block() (Block, *FormatError) {
	startLine := s.pos + 1

	indexText := strings.TrimSpace(s.lines[s.pos])
	index, err := parseIndex(indexText)
	if err != nil {
		return Block{}, &FormatError{Line: startLine, Reason: "expected block index, got " + strconv.Quote(indexText)}
	}
	s.pos++

	if s.pos >= len(s.lines) || isBlank(s.lines[s.pos]) {
		return Block{}, &FormatError{Line: startLine, Reason: "missing timing line"}
	}
	start, end, err := parseTiming(s.lines[s.pos])
	if err != nil {
		return Block{}, &FormatError{Line: s.pos + 1, Reason: "invalid timing line: " + err.Error()}
	}
	if start >= end {
		return Block{}, &FormatError{Line: s.pos + 1, Reason: "start must precede end"}
	}
	s.pos++

	var text []string
	for s.pos < len(s.lines) && !isBlank(s.lines[s.pos]) {
		text = append(text, strings.TrimRight(s.lines[s.pos], " \t"))
		s.pos++
	}
	if len(text) == 0 {
		return Block{}, &FormatError{Line: startLine, Reason: "block has no text"}
	}

	return Block{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.TrimSpace(strings.Join(text, "\n")),
	}, nil
}

func parseIndex(value string) (int, error) {
	return parseDigits(value)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
