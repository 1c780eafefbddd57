package sink

import (
	"unicode/utf8"

	"github.com/mapforge/mapforge/pkg/span"
)

// Counter ignores column/line bookkeeping and accumulates a UTF-8 byte
// count. Its purpose is to answer "how long would the output be" without
// materializing it.
type Counter struct {
	count uint64
}

// NewCounter creates a zeroed Counter.
func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Push(r rune)                        { c.count += uint64(utf8.RuneLen(r)) }
func (c *Counter) PushNewLine()                       { c.count++ }
func (c *Counter) PushString(s string)                { c.count += uint64(len(s)) }
func (c *Counter) PushStringContainsNewLine(s string) { c.count += uint64(len(s)) }
func (c *Counter) AddMapping(_ span.SpanWithSource)   {}
func (c *Counter) ShouldHalt() bool                   { return false }
func (c *Counter) CharactersOnCurrentLine() uint32    { return 0 }

// Count returns the accumulated byte count.
func (c *Counter) Count() uint64 { return c.count }

var _ Sink = (*Counter)(nil)

// BoundedCounter is a Counter whose ShouldHalt becomes true once the
// accumulator exceeds a caller-supplied maximum, and latches: once true,
// it never reports false again even if later queried after no further
// writes occur.
type BoundedCounter struct {
	Counter
	max     uint64
	halted  bool
}

// NewBoundedCounter creates a BoundedCounter that halts once more than max
// bytes have been pushed.
func NewBoundedCounter(max uint64) *BoundedCounter {
	return &BoundedCounter{max: max}
}

func (b *BoundedCounter) Push(r rune) {
	b.Counter.Push(r)
	b.checkHalt()
}

func (b *BoundedCounter) PushNewLine() {
	b.Counter.PushNewLine()
	b.checkHalt()
}

func (b *BoundedCounter) PushString(s string) {
	b.Counter.PushString(s)
	b.checkHalt()
}

func (b *BoundedCounter) PushStringContainsNewLine(s string) {
	b.Counter.PushStringContainsNewLine(s)
	b.checkHalt()
}

func (b *BoundedCounter) checkHalt() {
	if b.count > b.max {
		b.halted = true
	}
}

// ShouldHalt reports whether the accumulator has exceeded max. Once true,
// always true.
func (b *BoundedCounter) ShouldHalt() bool { return b.halted }

var _ Sink = (*BoundedCounter)(nil)
