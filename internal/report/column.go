package report

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// displayLine returns buffer with every tab replaced by a single space.
// The byte length is unchanged, so offsets into buffer stay valid.
func displayLine(buffer []byte) []byte {
	return bytes.ReplaceAll(buffer, []byte{'\t'}, []byte{' '})
}

// column returns the number of grapheme clusters in line[:byteOffset], which
// is the display column of the byte at byteOffset when every cluster takes
// one terminal cell. Wide characters are not accounted for.
//
// byteOffset must lie in [0, len(line)] and on a UTF-8 boundary. Anything
// else is a bug in whoever built the message, and column panics instead of
// guessing.
func column(line []byte, byteOffset int) int {
	if byteOffset < 0 || byteOffset > len(line) {
		panic(fmt.Sprintf("report: byte offset %d out of range for %d-byte line", byteOffset, len(line)))
	}
	if byteOffset < len(line) && !utf8.RuneStart(line[byteOffset]) {
		panic(fmt.Sprintf("report: byte offset %d is inside a UTF-8 sequence", byteOffset))
	}
	return uniseg.GraphemeClusterCount(string(line[:byteOffset]))
}
