package karaoke

import (
	"errors"
	"testing"

	"karaokesync/internal/lyrics"
)

func TestLocate(t *testing.T) {
	index := lyrics.Build([]string{"konna ni chikaku de", "mou ichido"})

	tests := []struct {
		name       string
		offset     int
		text       string
		want       Match
		ambiguous  bool
		candidates int
	}{
		{name: "offset verified", offset: 9, text: "chikaku", want: Match{Line: 0, Offset: 9, Length: 7}},
		{name: "case folded", offset: 9, text: "CHIKAKU", want: Match{Line: 0, Offset: 9, Length: 7}},
		{name: "extra internal spaces", offset: 9, text: "chikaku   de", want: Match{Line: 0, Offset: 9, Length: 10}},
		{name: "full width folded", offset: 20, text: "ｍｏｕ", want: Match{Line: 1, Offset: 0, Length: 3}},
		{name: "second line start", offset: 20, text: "mou", want: Match{Line: 1, Offset: 0, Length: 3}},
		{name: "wrong offset falls back", offset: 3, text: "chikaku", want: Match{Line: 0, Offset: 9, Length: 7}, ambiguous: true, candidates: 1},
		{name: "past end clamps to last line", offset: 100, text: "ichido", want: Match{Line: 1, Offset: 4, Length: 6}, ambiguous: true, candidates: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(index, tt.offset, tt.text)
			if tt.ambiguous {
				if !errors.Is(err, ErrAmbiguous) {
					t.Fatalf("expected ErrAmbiguous, got %v", err)
				}
				var matchErr *MatchError
				if !errors.As(err, &matchErr) || matchErr.Candidates != tt.candidates {
					t.Fatalf("expected %d candidates, got %v", tt.candidates, err)
				}
			} else if err != nil {
				t.Fatalf("Locate returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Locate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocateNormalizesLyricWhitespace(t *testing.T) {
	index := lyrics.Build([]string{"  konna   ni\tchikaku de  "})
	got, err := Locate(index, 9, "chikaku  de")
	if err != nil {
		t.Fatalf("expected normalized comparison to succeed, got %v", err)
	}
	if got != (Match{Line: 0, Offset: 9, Length: 10}) {
		t.Fatalf("unexpected match %+v", got)
	}
}

func TestLocatePicksNearestOfSeveralOccurrences(t *testing.T) {
	index := lyrics.Build([]string{"la la la"})
	got, err := Locate(index, 4, "la")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	var matchErr *MatchError
	if !errors.As(err, &matchErr) || matchErr.Candidates != 3 || matchErr.Line != 0 {
		t.Fatalf("unexpected match error %v", err)
	}
	if got.Offset != 3 {
		t.Fatalf("expected nearest occurrence at 3, got %d", got.Offset)
	}
}

func TestLocateNotFound(t *testing.T) {
	index := lyrics.Build([]string{"konna ni chikaku de", "mou ichido"})

	_, err := Locate(index, 21, "sayonara")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var matchErr *MatchError
	if !errors.As(err, &matchErr) || matchErr.Line != 1 {
		t.Fatalf("expected search in line 1, got %v", err)
	}

	if _, err := Locate(index, 0, "   "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank highlight, got %v", err)
	}
}

func TestLocateEmptyIndex(t *testing.T) {
	_, err := Locate(lyrics.Build(nil), 0, "anything")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, lyrics.ErrNotFound) {
		t.Fatalf("expected wrapped index error, got %v", err)
	}
	var matchErr *MatchError
	if !errors.As(err, &matchErr) || matchErr.Line != -1 {
		t.Fatalf("expected no line, got %v", err)
	}
}

func TestLocateHighlightWithLeadingSpace(t *testing.T) {
	index := lyrics.Build([]string{"konna ni chikaku de", "mou ichido"})

	tests := []struct {
		name   string
		offset int
		text   string
		want   Match
	}{
		{name: "inside line keeps the separator", offset: 8, text: " chikaku", want: Match{Line: 0, Offset: 8, Length: 8}},
		{name: "line start skips the separator", offset: 19, text: " mou", want: Match{Line: 1, Offset: 0, Length: 3}},
		{name: "extra spaces use collapsed length", offset: 9, text: "chikaku  de", want: Match{Line: 0, Offset: 9, Length: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(index, tt.offset, tt.text)
			if err != nil {
				t.Fatalf("expected direct match, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("Locate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocateTrailingWindowSpaceNotSwallowed(t *testing.T) {
	index := lyrics.Build([]string{"chikaku de mou"})
	got, err := Locate(index, 0, "chikaku  de")
	if err != nil {
		t.Fatalf("expected direct match, got %v", err)
	}
	if got != (Match{Line: 0, Offset: 0, Length: 10}) {
		t.Fatalf("unexpected match %+v", got)
	}
}

func TestLocateSkipsBlankLines(t *testing.T) {
	index := lyrics.Build([]string{"konna ni", "", "mou ichido"})

	for _, offset := range []int{8, 9} {
		text := " mou"
		if offset == 8 {
			text = "  mou"
		}
		got, err := Locate(index, offset, text)
		if err != nil {
			t.Fatalf("offset %d: expected direct match, got %v", offset, err)
		}
		if got != (Match{Line: 2, Offset: 0, Length: 3}) {
			t.Fatalf("offset %d: unexpected match %+v", offset, got)
		}
	}

	tail := lyrics.Build([]string{"konna ni", ""})
	_, err := Locate(tail, 9, "ni")
	var matchErr *MatchError
	if !errors.Is(err, ErrNotFound) || !errors.As(err, &matchErr) || matchErr.Line != 1 {
		t.Fatalf("expected not found on the blank tail line, got %v", err)
	}
}

func TestLocateHighlightAcrossLineBoundary(t *testing.T) {
	index := lyrics.Build([]string{"konna ni chikaku de", "mou ichido"})

	_, err := Locate(index, 17, "de mou")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var matchErr *MatchError
	if !errors.As(err, &matchErr) || matchErr.Line != 0 {
		t.Fatalf("expected search confined to line 0, got %v", err)
	}
}
