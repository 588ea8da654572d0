package karaoke

import (
	"strings"

	"karaokesync/internal/lyrics"
	"karaokesync/internal/srt"
	"karaokesync/internal/textutil"
)

// RenderWord returns the text of a Word mode block. ok is false when the
// highlight carries no visible text and the block must be dropped.
func RenderWord(opts Options, span Span) (string, bool) {
	plain := textutil.CollapseWhitespace(span.Plain())
	if plain == "" {
		return "", false
	}
	switch opts.Style {
	case StyleNone:
		return plain, true
	case StyleLineAll:
		return Wrap(plain, opts.color()), true
	default:
		return strings.TrimSpace(span.Markup), true
	}
}

// RenderLine returns the text of a Line or LinePlusNext block for a located
// highlight. Under StylePreserve the original markup is spliced into the
// line's normalized text at the match; the lookahead line is never
// highlighted.
func RenderLine(opts Options, index *lyrics.Index, span Span, match Match) string {
	line, ok := index.Line(match.Line)
	if !ok {
		return ""
	}
	norm := line.Normalized

	var current string
	switch opts.Style {
	case StyleNone:
		current = norm
	case StyleLineAll:
		current = Wrap(norm, opts.color())
	default:
		end := textutil.RuneLen(norm)
		current = textutil.Slice(norm, 0, match.Offset) +
			strings.TrimSpace(span.Markup) +
			textutil.Slice(norm, match.Offset+match.Length, end)
	}

	if opts.Mode != ModeLinePlusNext {
		return current
	}
	next, ok := index.Line(match.Line + 1)
	if !ok || next.Normalized == "" {
		return current
	}
	lookahead := next.Normalized
	if opts.Style == StyleLineAll {
		lookahead = Wrap(lookahead, opts.color())
	}
	return current + "\n" + lookahead
}

func withText(block srt.Block, text string) srt.Block {
	return srt.Block{
		Index: block.Index,
		Start: block.Start,
		End:   block.End,
		Text:  text,
	}
}
