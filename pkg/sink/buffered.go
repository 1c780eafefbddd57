package sink

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/sourcemap"
	"github.com/mapforge/mapforge/pkg/span"
)

// Buffered is a text buffer paired with an optional source-map builder.
// Passing a nil builder gives the zero-overhead "map-free" path without
// needing a second sink type, mirroring the dual constructor shape of the
// original ToStringer this is adapted from.
type Buffered struct {
	buf     strings.Builder
	builder *sourcemap.Builder

	sinceNewLine int // bytes written since the last '\n'
}

// NewBuffered creates a Buffered sink. builder may be nil.
func NewBuffered(builder *sourcemap.Builder) *Buffered {
	return &Buffered{builder: builder}
}

func (b *Buffered) Push(r rune) {
	if b.builder != nil {
		b.builder.AddToColumn(uint32(utf16RuneLen(r)))
	}
	b.buf.WriteRune(r)
	b.sinceNewLine += utf8.RuneLen(r)
}

func (b *Buffered) PushNewLine() {
	if b.builder != nil {
		b.builder.AddNewLine()
	}
	b.buf.WriteByte('\n')
	b.sinceNewLine = 0
}

func (b *Buffered) PushString(s string) {
	if b.builder != nil {
		b.builder.AddToColumn(uint32(utf8.RuneCountInString(s)))
	}
	b.buf.WriteString(s)
	b.sinceNewLine += len(s)
}

func (b *Buffered) PushStringContainsNewLine(s string) {
	if b.builder != nil {
		for _, r := range s {
			if r == '\n' {
				b.builder.AddNewLine()
			}
		}
	}
	b.buf.WriteString(s)
	if idx := strings.LastIndexByte(s, '\n'); idx != -1 {
		b.sinceNewLine = len(s) - idx - 1
	} else {
		b.sinceNewLine += len(s)
	}
}

// AddMapping records a mapping at the builder's current output column —
// the column of the character about to be written, per the sink contract.
func (b *Buffered) AddMapping(sourceSpan span.SpanWithSource) {
	if b.builder != nil {
		b.builder.AddMapping(sourceSpan, b.builder.CurrentColumn())
	}
}

func (b *Buffered) ShouldHalt() bool { return false }

func (b *Buffered) CharactersOnCurrentLine() uint32 { return uint32(b.sinceNewLine) }

// String returns the accumulated text.
func (b *Buffered) String() string { return b.buf.String() }

// Build finishes the paired builder (if any) against reg and returns the
// generated text alongside its source map. Calling Build with a nil
// builder returns an empty SourceMap.
func (b *Buffered) Build(reg sourcefs.Registry) (string, sourcemap.SourceMap) {
	if b.builder == nil {
		return b.buf.String(), sourcemap.SourceMap{}
	}
	return b.buf.String(), b.builder.Build(reg)
}

func utf16RuneLen(r rune) int {
	return len(utf16.Encode([]rune{r}))
}

var _ Sink = (*Buffered)(nil)
