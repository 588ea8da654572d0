// Package alignment turns word-level forced-alignment output into the
// highlighted timed blocks consumed by the karaoke post-processor.
package alignment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode"

	"karaokesync/internal/karaoke"
	"karaokesync/internal/srt"
)

// ErrNoWords is returned when a document carries no timed word.
var ErrNoWords = errors.New("alignment: no words")

// Word is one aligned token. Text keeps the aligner's own leading
// whitespace, which is how tokens are delimited in the transcript.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment groups consecutive words.
type Segment struct {
	Text  string `json:"text,omitempty"`
	Words []Word `json:"words"`
}

// Document is the JSON result of an alignment run.
type Document struct {
	Segments []Segment `json:"segments"`
}

// Load decodes an alignment document.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("alignment: decode: %w", err)
	}
	for _, seg := range doc.Segments {
		if len(seg.Words) > 0 {
			return &doc, nil
		}
	}
	return nil, ErrNoWords
}

type token struct {
	word Word
	// byte range of the visible word inside the transcript
	start int
	end   int
}

// layout flattens every word into one transcript line. Line breaks become
// spaces and a space is inserted between segments that do not carry one.
func (d *Document) layout() (string, []token) {
	var b strings.Builder
	var tokens []token
	for _, seg := range d.Segments {
		for wi, w := range seg.Words {
			text := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(w.Text)
			if wi == 0 && b.Len() > 0 && !startsWithSpace(text) && !endsWithSpace(b.String()) {
				b.WriteByte(' ')
			}
			lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
			trimmed := strings.TrimSpace(text)
			start := b.Len() + lead
			b.WriteString(text)
			tokens = append(tokens, token{word: w, start: start, end: start + len(trimmed)})
		}
	}
	return b.String(), tokens
}

// Transcript returns the flattened text every highlight block is built from.
func (d *Document) Transcript() string {
	text, _ := d.layout()
	return strings.TrimSpace(text)
}

// HighlightBlocks emits one block per word. Each block shows the whole
// transcript with that word wrapped in font markup of the given color and
// carries the word's own timing. Blank words and words whose end does not
// follow their start are skipped.
func (d *Document) HighlightBlocks(color string) []srt.Block {
	transcript, tokens := d.layout()
	lead := len(transcript) - len(strings.TrimLeftFunc(transcript, unicode.IsSpace))
	var blocks []srt.Block
	for _, tok := range tokens {
		if tok.end == tok.start {
			continue
		}
		start, end := seconds(tok.word.Start), seconds(tok.word.End)
		if end <= start {
			continue
		}
		text := transcript[lead:tok.start] +
			karaoke.Wrap(transcript[tok.start:tok.end], color) +
			transcript[tok.end:]
		blocks = append(blocks, srt.Block{
			Index: len(blocks) + 1,
			Start: start,
			End:   end,
			Text:  strings.TrimRightFunc(text, unicode.IsSpace),
		})
	}
	return blocks
}

func seconds(v float64) time.Duration {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return time.Duration(math.Round(v*1000)) * time.Millisecond
}

func startsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[0]))
}

func endsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[len(s)-1]))
}
