package karaoke

import (
	"strings"

	"karaokesync/internal/textutil"
)

const highlightTag = "font"

// Span is the first highlight found in a block's text.
type Span struct {
	// Prefix is the text before the opening tag.
	Prefix string
	// Markup is the opening tag, the highlighted content and the closing tag.
	Markup string
	// Suffix is the text after the closing tag.
	Suffix string
	// Inner is the content between the tags, markup intact.
	Inner string
	// Color is the color attribute of the opening tag, if any.
	Color string
}

// Plain returns the highlighted text with all markup removed.
func (s Span) Plain() string {
	return Strip(s.Inner)
}

// Offset returns the position of the highlight in the markup-free text of
// the block, in runes.
func (s Span) Offset() int {
	return textutil.RuneLen(Strip(s.Prefix))
}

// Extract finds the first font highlight in text. Nested font tags inside
// the highlight are kept as part of Markup. A missing opening or closing tag
// yields ErrNoHighlight.
func Extract(text string) (Span, error) {
	open, ok := findTag(text, 0, func(t tag) bool {
		return !t.closing && t.name == highlightTag
	})
	if !ok {
		return Span{}, ErrNoHighlight
	}

	depth := 1
	pos := open.end
	for {
		next, ok := findTag(text, pos, func(t tag) bool { return t.name == highlightTag })
		if !ok {
			return Span{}, ErrNoHighlight
		}
		pos = next.end
		if !next.closing {
			depth++
			continue
		}
		depth--
		if depth > 0 {
			continue
		}
		return Span{
			Prefix: text[:open.start],
			Markup: text[open.start:next.end],
			Suffix: text[next.end:],
			Inner:  text[open.end:next.start],
			Color:  attribute(text[open.start:open.end], "color"),
		}, nil
	}
}

// Strip removes every markup tag from text, leaving the content in place.
// A '<' that does not start a well-formed tag is kept as text.
func Strip(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for pos < len(text) {
		idx := strings.IndexByte(text[pos:], '<')
		if idx < 0 {
			b.WriteString(text[pos:])
			break
		}
		start := pos + idx
		b.WriteString(text[pos:start])
		if t, ok := scanTag(text, start); ok {
			pos = t.end
			continue
		}
		b.WriteByte('<')
		pos = start + 1
	}
	return b.String()
}

// Wrap surrounds text with a font tag carrying color.
func Wrap(text, color string) string {
	return `<font color="` + color + `">` + text + `</font>`
}

type tag struct {
	name    string
	closing bool
	start   int
	end     int
}

func findTag(text string, from int, match func(tag) bool) (tag, bool) {
	pos := from
	for pos < len(text) {
		idx := strings.IndexByte(text[pos:], '<')
		if idx < 0 {
			return tag{}, false
		}
		start := pos + idx
		t, ok := scanTag(text, start)
		if ok && match(t) {
			return t, true
		}
		if ok {
			pos = t.end
		} else {
			pos = start + 1
		}
	}
	return tag{}, false
}

// scanTag recognizes '<' ['/'] letter {letter|digit} [attrs] '>' at start.
// Tags never span lines or contain another '<'.
func scanTag(text string, start int) (tag, bool) {
	i := start + 1
	t := tag{start: start}
	if i < len(text) && text[i] == '/' {
		t.closing = true
		i++
	}
	nameStart := i
	for i < len(text) && (isLetter(text[i]) || (i > nameStart && isDigit(text[i]))) {
		i++
	}
	if i == nameStart || i >= len(text) {
		return tag{}, false
	}
	t.name = strings.ToLower(text[nameStart:i])
	switch c := text[i]; {
	case c == '>':
	case c == ' ' || c == '\t' || c == '/':
	default:
		return tag{}, false
	}
	for ; i < len(text); i++ {
		switch text[i] {
		case '>':
			t.end = i + 1
			return t, true
		case '<', '\n', '\r':
			return tag{}, false
		}
	}
	return tag{}, false
}

// attribute returns the value of name inside an opening tag, unquoting
// single or double quotes.
func attribute(openTag, name string) string {
	lower := strings.ToLower(openTag)
	key := name + "="
	idx := 0
	for {
		found := strings.Index(lower[idx:], key)
		if found < 0 {
			return ""
		}
		at := idx + found
		idx = at + len(key)
		if at > 0 && !isSpace(lower[at-1]) {
			continue
		}
		rest := openTag[idx:]
		if rest == "" {
			return ""
		}
		if q := rest[0]; q == '"' || q == '\'' {
			if end := strings.IndexByte(rest[1:], q); end >= 0 {
				return rest[1 : 1+end]
			}
			return ""
		}
		end := strings.IndexAny(rest, " \t/>")
		if end < 0 {
			end = len(rest)
		}
		return rest[:end]
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
