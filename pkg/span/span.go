// Package span defines the byte-range and line/column value types shared
// by the source-map builder and its registry, plus the conversions
// between them.
package span

import (
	"errors"
	"math"

	"github.com/mapforge/mapforge/pkg/sourcefs"
)

// ErrOutOfRange is returned by a conversion when a resolved byte offset
// does not fit in a uint32 (sources larger than 4 GiB are unsupported).
var ErrOutOfRange = errors.New("span: byte offset out of range (source exceeds 4 GiB)")

// Span is a half-open byte range with no associated source.
type Span struct {
	Start, End uint32
}

// IsAdjacentTo reports whether the end of s is the start of other.
func (s Span) IsAdjacentTo(other Span) bool {
	return s.End == other.Start
}

// Union returns the span starting at s.Start and ending at other.End.
func (s Span) Union(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

// SpanWithSource is a half-open byte range within a specific registered
// source. The null span is the zero value: {0, 0, sourcefs.Null}.
type SpanWithSource struct {
	Start, End uint32
	Source     sourcefs.SourceId
}

// NullSpan is the span meaning "no mapping".
var NullSpan = SpanWithSource{}

// IsNull reports whether s carries the null source.
func (s SpanWithSource) IsNull() bool { return s.Source.IsNull() }

// WithoutSource discards the source, keeping only the byte range.
func (s SpanWithSource) WithoutSource() Span {
	return Span{Start: s.Start, End: s.End}
}

// WithSource attaches source to a sourceless span.
func WithSource(s Span, source sourcefs.SourceId) SpanWithSource {
	return SpanWithSource{Start: s.Start, End: s.End, Source: source}
}

// IsAdjacentTo reports whether the end of s is the start of other, within
// the same source.
func (s SpanWithSource) IsAdjacentTo(other SpanWithSource) bool {
	return s.Source == other.Source && s.End == other.Start
}

// Union returns the span starting at s.Start and ending at other.End,
// keeping s's source.
func (s SpanWithSource) Union(other SpanWithSource) SpanWithSource {
	return SpanWithSource{Start: s.Start, End: other.End, Source: s.Source}
}

// StartPosition returns the Position at the start of s.
func (s SpanWithSource) StartPosition() Position {
	return Position{Offset: s.Start, Source: s.Source}
}

// EndPosition returns the Position at the end of s.
func (s SpanWithSource) EndPosition() Position {
	return Position{Offset: s.End, Source: s.Source}
}

// Position is a single zero-based byte offset within a registered source.
type Position struct {
	Offset uint32
	Source sourcefs.SourceId
}

func toUint32(n int) (uint32, error) {
	if n < 0 || n > math.MaxUint32 {
		return 0, ErrOutOfRange
	}
	return uint32(n), nil
}
