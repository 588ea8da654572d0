package srt

import (
	"testing"
	"time"
)

func TestEncodeRenumbersAndTerminates(t *testing.T) {
	blocks := []Block{
		{Index: 4, Start: time.Second, End: 2 * time.Second, Text: "chikaku"},
		{Index: 9, Start: 2 * time.Second, End: 3 * time.Second, Text: "mou\nichido"},
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nchikaku\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nmou\nichido\n\n"
	if got := Encode(blocks); got != want {
		t.Fatalf("Encode mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestEncodeDropsBlankLines(t *testing.T) {
	blocks := []Block{
		{Start: 0, End: time.Second, Text: "line one\n\nline two"},
		{Start: time.Second, End: 2 * time.Second, Text: "   "},
		{Start: 2 * time.Second, End: 3 * time.Second, Text: "last"},
	}
	want := "1\n00:00:00,000 --> 00:00:01,000\nline one\nline two\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\nlast\n\n"
	if got := Encode(blocks); got != want {
		t.Fatalf("Encode mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Fatalf("Encode(nil) = %q, want empty", got)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,000\nhello\n\n2\n00:00:02,000 --> 00:00:03,500\nworld\n\n"
	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Encode(result.Blocks); got != content {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, content)
	}
}
