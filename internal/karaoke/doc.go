// Package karaoke rebuilds line-oriented karaoke subtitles from word-level
// forced-alignment output.
//
// An aligner emits one timed block per sung token whose text is the whole
// flattened transcript with the current token wrapped in highlight markup.
// The package extracts that highlight, maps it back onto the original lyric
// line through a lyrics.Index, and renders each block according to a
// DisplayMode and HighlightStyle. Blocks that cannot be located fall back to
// their raw text so every input block still produces output (Word mode
// excepted, where blocks without a highlight are dropped).
//
// Processor runs the per-block stage in parallel with a bounded worker count
// and always returns blocks in input order. Run wires parsing, indexing,
// processing and encoding for a single invocation.
package karaoke
