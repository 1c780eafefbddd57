// Package sink implements the text-sink capability a generator writes
// output through. Every append operation is an opportunity to emit a
// source-map mapping; the sink is responsible for counting columns on the
// current output line so the builder doesn't have to.
package sink

import (
	"strings"

	"github.com/mapforge/mapforge/pkg/span"
)

// Sink is the capability set a generator writes against. add_mapping is a
// hint: it must be called immediately before the next text append, and
// implementations record it at the column of the character about to be
// written, never a stale one.
type Sink interface {
	Push(r rune)
	PushNewLine()
	PushString(s string)
	// PushStringContainsNewLine is the only operation a sink is required
	// to scan for '\n'; PushString may assume its argument has none.
	// Violating that is a caller bug, not a sink crash — at worst the
	// column counter becomes inaccurate.
	PushStringContainsNewLine(s string)
	AddMapping(sourceSpan span.SpanWithSource)
	ShouldHalt() bool
	CharactersOnCurrentLine() uint32
}

// PlainBuffer is a growable text buffer with no source-map attached:
// AddMapping is a no-op and ShouldHalt is always false.
type PlainBuffer struct {
	buf strings.Builder
}

// NewPlainBuffer creates an empty PlainBuffer.
func NewPlainBuffer() *PlainBuffer { return &PlainBuffer{} }

func (p *PlainBuffer) Push(r rune)                                { p.buf.WriteRune(r) }
func (p *PlainBuffer) PushNewLine()                                { p.buf.WriteByte('\n') }
func (p *PlainBuffer) PushString(s string)                         { p.buf.WriteString(s) }
func (p *PlainBuffer) PushStringContainsNewLine(s string)          { p.buf.WriteString(s) }
func (p *PlainBuffer) AddMapping(_ span.SpanWithSource)            {}
func (p *PlainBuffer) ShouldHalt() bool                            { return false }

// CharactersOnCurrentLine rescans the buffer backwards to the previous
// newline. It is only ever called on demand, so PlainBuffer does not pay
// the bookkeeping cost the mapped sinks do.
func (p *PlainBuffer) CharactersOnCurrentLine() uint32 {
	s := p.buf.String()
	idx := strings.LastIndexByte(s, '\n')
	return uint32(len(s) - idx - 1)
}

// String returns the accumulated text.
func (p *PlainBuffer) String() string { return p.buf.String() }

var _ Sink = (*PlainBuffer)(nil)
