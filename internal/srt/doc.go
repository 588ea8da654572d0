// Package srt reads and writes SubRip timed-text streams.
//
// Parse is a hand-written line scanner over the block grammar
//
//	<index>
//	HH:MM:SS,mmm --> HH:MM:SS,mmm
//	<text line>+
//	<blank line | end of input>
//
// and Encode renders blocks back to the same grammar with fresh sequential
// indexes. Timestamps are held as time.Duration and formatted back with
// millisecond precision, so a well-formed timestamp survives a round trip
// byte for byte.
package srt
