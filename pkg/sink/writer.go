package sink

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mapforge/mapforge/pkg/sourcemap"
	"github.com/mapforge/mapforge/pkg/span"
)

// WriterBacked behaves like Buffered but writes to an io.Writer instead of
// an in-memory buffer. Errors from the writer are fatal: once a write
// fails, the sink is poisoned and every subsequent write to the writer is
// skipped, while Err keeps returning that first error. The builder and the
// current-line counter still advance on later pushes.
type WriterBacked struct {
	w       io.Writer
	builder *sourcemap.Builder

	sinceNewLine int
	err          error
}

// NewWriterBacked creates a WriterBacked sink over w. builder may be nil.
func NewWriterBacked(w io.Writer, builder *sourcemap.Builder) *WriterBacked {
	return &WriterBacked{w: w, builder: builder}
}

// Err returns the first write error encountered, if any.
func (w *WriterBacked) Err() error { return w.err }

func (w *WriterBacked) write(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = err
	}
}

func (w *WriterBacked) Push(r rune) {
	if w.builder != nil {
		w.builder.AddToColumn(uint32(utf16RuneLen(r)))
	}
	w.write(string(r))
	w.sinceNewLine += utf8.RuneLen(r)
}

func (w *WriterBacked) PushNewLine() {
	if w.builder != nil {
		w.builder.AddNewLine()
	}
	w.write("\n")
	w.sinceNewLine = 0
}

func (w *WriterBacked) PushString(s string) {
	if w.builder != nil {
		w.builder.AddToColumn(uint32(utf8.RuneCountInString(s)))
	}
	w.write(s)
	w.sinceNewLine += len(s)
}

func (w *WriterBacked) PushStringContainsNewLine(s string) {
	if w.builder != nil {
		for _, r := range s {
			if r == '\n' {
				w.builder.AddNewLine()
			}
		}
	}
	w.write(s)
	if idx := strings.LastIndexByte(s, '\n'); idx != -1 {
		w.sinceNewLine = len(s) - idx - 1
	} else {
		w.sinceNewLine += len(s)
	}
}

func (w *WriterBacked) AddMapping(sourceSpan span.SpanWithSource) {
	if w.builder != nil {
		w.builder.AddMapping(sourceSpan, w.builder.CurrentColumn())
	}
}

func (w *WriterBacked) ShouldHalt() bool { return false }

func (w *WriterBacked) CharactersOnCurrentLine() uint32 { return uint32(w.sinceNewLine) }

var _ Sink = (*WriterBacked)(nil)
