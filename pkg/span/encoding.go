package span

import "unicode/utf8"

// Encoding selects how a LineColumnSpan/LineColumnPosition measures
// "column": ByteWise counts bytes since the last line start, Utf8 counts
// code points. V3 source-map consumers generally expect UTF-16 code-unit
// columns; Utf8 (code points) is the closer of the two stdlib-expressible
// units and is what this module defaults LSP-facing conversions to.
type Encoding interface {
	// EncodedLength returns the column-unit length of s.
	EncodedLength(s string) int
	// EncodedLengthToByteCount returns how many bytes of s are consumed by
	// advancing length column-units from its start.
	EncodedLengthToByteCount(s string, length int) int
}

// ByteWise measures columns in bytes.
type ByteWise struct{}

func (ByteWise) EncodedLength(s string) int { return len(s) }

func (ByteWise) EncodedLengthToByteCount(_ string, length int) int { return length }

// Utf8 measures columns in Unicode code points.
type Utf8 struct{}

func (Utf8) EncodedLength(s string) int { return utf8.RuneCountInString(s) }

func (Utf8) EncodedLengthToByteCount(s string, length int) int {
	count := 0
	for i := 0; i < length && count < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[count:])
		count += size
	}
	return count
}
