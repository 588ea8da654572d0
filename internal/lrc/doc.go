// Package lrc reads line-synchronized LRC lyrics and converts them into
// timed-text blocks.
//
// Each timestamp opens a line that lasts until the next timestamp. Lines
// without text only mark boundaries and produce no block. The final line ends
// at the [length:] tag when present, or after a fixed tail otherwise.
package lrc
