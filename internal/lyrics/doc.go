// Package lyrics loads original lyric files and indexes their lines in the
// flattened clean-text space used by forced alignment.
//
// The aligner is fed every normalized line joined by one separator character,
// so a character offset reported against that transcript maps back onto a line
// through the cumulative start offsets kept by Index. Blank lines are kept as
// zero-length slots: they are structural placeholders in a lyric file.
package lyrics
