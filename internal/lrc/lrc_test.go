package lrc

import (
	"errors"
	"strings"
	"testing"
	"time"

	"karaokesync/internal/srt"
)

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"[ti:Chikaku]",
		"[ar:Someone]",
		"[al:Album]",
		"[00:12.34]konna ni chikaku de",
		"[00:20.5][01:02.345]mou ichido",
		"[00:15]",
		"not a lyric line",
		"[00:01.00]  intro  ",
	}, "\n")

	lyrics, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if lyrics.Title != "Chikaku" || lyrics.Artist != "Someone" || lyrics.Album != "Album" {
		t.Fatalf("unexpected metadata %+v", lyrics)
	}

	want := []Line{
		{Time: ms(1000), Text: "intro"},
		{Time: ms(12340), Text: "konna ni chikaku de"},
		{Time: ms(15000), Text: ""},
		{Time: ms(20500), Text: "mou ichido"},
		{Time: ms(62345), Text: "mou ichido"},
	}
	if len(lyrics.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %+v", len(want), lyrics.Lines)
	}
	for i := range want {
		if lyrics.Lines[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, lyrics.Lines[i], want[i])
		}
	}
}

func TestParseOffsetAndLength(t *testing.T) {
	input := "[offset:+500]\n[length: 01:00.00]\n[00:00.20]early\n[00:10.00]later\n"
	lyrics, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if lyrics.Offset != ms(500) {
		t.Fatalf("Offset = %v", lyrics.Offset)
	}
	if lyrics.Length != ms(59500) {
		t.Fatalf("Length = %v", lyrics.Length)
	}
	if lyrics.Lines[0].Time != 0 || lyrics.Lines[1].Time != ms(9500) {
		t.Fatalf("offset not applied: %+v", lyrics.Lines)
	}

	negative, err := Parse(strings.NewReader("[offset:-250]\n[00:01.00]x\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if negative.Lines[0].Time != ms(1250) {
		t.Fatalf("negative offset not applied: %+v", negative.Lines)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("[ti:Only metadata]\nplain text\n")); !errors.Is(err, ErrNoTimestamps) {
		t.Fatalf("expected ErrNoTimestamps, got %v", err)
	}
	if _, err := Parse(strings.NewReader("[offset:soon]\n[00:01.00]x\n")); err == nil {
		t.Fatal("expected error for invalid offset")
	}
	if _, err := Parse(strings.NewReader("[length:long]\n[00:01.00]x\n")); err == nil {
		t.Fatal("expected error for invalid length")
	}
}

func TestBlocks(t *testing.T) {
	lyrics := &Lyrics{Lines: []Line{
		{Time: ms(1000), Text: "one"},
		{Time: ms(3000), Text: ""},
		{Time: ms(4000), Text: "two"},
		{Time: ms(4000), Text: "two again"},
		{Time: ms(6000), Text: "three"},
	}}

	got := lyrics.Blocks(0)
	want := []srt.Block{
		{Index: 1, Start: ms(1000), End: ms(3000), Text: "one"},
		{Index: 2, Start: ms(4000), End: ms(6000), Text: "two"},
		{Index: 3, Start: ms(4000), End: ms(6000), Text: "two again"},
		{Index: 4, Start: ms(6000), End: ms(11000), Text: "three"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	lyrics.Length = ms(8000)
	if last := lyrics.Blocks(time.Second); last[len(last)-1].End != ms(8000) {
		t.Fatalf("expected length tag to end last line, got %+v", last[len(last)-1])
	}
	lyrics.Length = ms(5000)
	if last := lyrics.Blocks(time.Second); last[len(last)-1].End != ms(7000) {
		t.Fatalf("expected tail when length precedes last line, got %+v", last[len(last)-1])
	}
}

func TestBlocksEncode(t *testing.T) {
	lyrics, err := Parse(strings.NewReader("[00:01.00]konna ni chikaku de\n[00:04.50]mou ichido\n[00:07.00]\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := srt.Encode(lyrics.Blocks(DefaultTail))
	want := "1\n00:00:01,000 --> 00:00:04,500\nkonna ni chikaku de\n\n" +
		"2\n00:00:04,500 --> 00:00:07,000\nmou ichido\n\n"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
	if texts := lyrics.Texts(); len(texts) != 2 || texts[1] != "mou ichido" {
		t.Fatalf("unexpected texts %v", texts)
	}
}
