// Package textutil provides the text normalization and matching primitives
// shared by the lyric index and the highlight locator.
//
// The primary use cases are:
//   - Collapsing whitespace runs so lyric lines and subtitle text compare equal
//     regardless of incidental spacing
//   - Building case- and width-insensitive comparison keys
//   - Searching for a phrase inside a line by rune position
//   - Ranking candidate lines by Jaro-Winkler similarity for diagnostics
//
// All positions returned by this package are rune offsets, never byte offsets.
package textutil
