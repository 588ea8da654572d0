package lyrics

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildOffsets(t *testing.T) {
	idx := Build([]string{"  konna ni   chikaku de ", "", "mou ichido"})
	want := []struct {
		normalized string
		start      int
		length     int
	}{
		{"konna ni chikaku de", 0, 19},
		{"", 20, 0},
		{"mou ichido", 21, 10},
	}
	if idx.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", idx.Len(), len(want))
	}
	for i, w := range want {
		line, ok := idx.Line(i)
		if !ok {
			t.Fatalf("Line(%d) missing", i)
		}
		if line.Normalized != w.normalized || line.StartOffset != w.start || line.Length != w.length {
			t.Errorf("line %d = %+v, want %+v", i, line, w)
		}
	}
	if idx.TotalLength() != 31 {
		t.Errorf("TotalLength = %d, want 31", idx.TotalLength())
	}
	if got := idx.CleanText(); got != "konna ni chikaku de  mou ichido" {
		t.Errorf("CleanText = %q", got)
	}
	if got := idx.CleanText(); len([]rune(got)) != idx.TotalLength() {
		t.Errorf("CleanText length %d disagrees with TotalLength %d", len([]rune(got)), idx.TotalLength())
	}
}

func TestBuildCountsRunes(t *testing.T) {
	idx := Build([]string{"こんなに近くで", "もう一度"})
	line, _ := idx.Line(1)
	if line.StartOffset != 8 {
		t.Fatalf("StartOffset = %d, want 8", line.StartOffset)
	}
}

func TestLocateRoundTrip(t *testing.T) {
	idx := Build([]string{"konna ni chikaku de", "", "", "mou ichido", "x"})
	for i := 0; i < idx.Len(); i++ {
		line, _ := idx.Line(i)
		got, err := idx.Locate(line.StartOffset)
		if err != nil {
			t.Fatalf("Locate(%d): %v", line.StartOffset, err)
		}
		if got != i {
			t.Errorf("Locate(start of line %d) = %d", i, got)
		}
	}
}

func TestLocateBoundaries(t *testing.T) {
	idx := Build([]string{"konna ni chikaku de", "mou ichido"})
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"inside first", 9, 0},
		{"last char of first", 18, 0},
		{"separator goes to next", 19, 1},
		{"inside second", 25, 1},
		{"end of last clamps", 30, 1},
		{"beyond total clamps", 500, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Locate(tt.offset)
			if err != nil {
				t.Fatalf("Locate(%d): %v", tt.offset, err)
			}
			if got != tt.want {
				t.Errorf("Locate(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestLocateEmptyIndex(t *testing.T) {
	idx := Build(nil)
	if _, err := idx.Locate(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := Build([]string{"a"}).Locate(-1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for negative offset, got %v", err)
	}
}

func TestReadKeepsBlankLines(t *testing.T) {
	lines, err := Read(strings.NewReader("\ufeffline one\r\n\r\nline two\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{"line one", "", "line two"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
