// Package sourcemap implements the source-map builder: the state machine
// that tracks a generator's current output position, accumulates an
// ordered sequence of mapping-or-break events, and serializes them into
// the Base64-VLQ "mappings" field of a Source Map v3 document.
package sourcemap

import (
	"strings"

	"github.com/mapforge/mapforge/pkg/lines"
	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/span"
	"github.com/mapforge/mapforge/pkg/vlq"
)

// Mapping is the internal event recording one mapping: the output column
// the generator reports "about to write", and the original byte position
// it corresponds to. The output line is implicit — the number of Break
// events that preceded this event in the builder's event list.
type Mapping struct {
	OutputColumn    uint32
	SourceByteStart uint32
	Source          sourcefs.SourceId
}

type eventKind uint8

const (
	eventMapping eventKind = iota
	eventBreak
)

type event struct {
	kind    eventKind
	mapping Mapping
}

// Builder accumulates mapping and line-break events in generation order.
// It is single-threaded: every method call happens on the goroutine that
// owns the generator producing output. A Builder is consumed exactly once
// by Build.
type Builder struct {
	currentLine   uint32
	currentColumn uint32

	events []event

	usedSources map[sourcefs.SourceId]struct{}
	sourceOrder []sourcefs.SourceId
}

// NewBuilder creates an empty builder at output position (0, 0).
func NewBuilder() *Builder {
	return &Builder{usedSources: make(map[sourcefs.SourceId]struct{})}
}

// AddNewLine records a line break in the generated output.
func (b *Builder) AddNewLine() {
	b.events = append(b.events, event{kind: eventBreak})
	b.currentLine++
	b.currentColumn = 0
}

// AddToColumn advances the builder's notion of the current output column
// by n. This bookkeeping matters only for sinks that do not report their
// own column explicitly; see pkg/sink.
func (b *Builder) AddToColumn(n uint32) {
	b.currentColumn += n
}

// AddMapping records a mapping from sourceSpan's start to the generator's
// reported output column. A null-source span is recorded (it is dropped
// only at Build time) so that callers may add mappings unconditionally
// without checking the source first.
func (b *Builder) AddMapping(sourceSpan span.SpanWithSource, outputColumn uint32) {
	if !sourceSpan.Source.IsNull() {
		if _, seen := b.usedSources[sourceSpan.Source]; !seen {
			b.usedSources[sourceSpan.Source] = struct{}{}
			b.sourceOrder = append(b.sourceOrder, sourceSpan.Source)
		}
	}
	b.events = append(b.events, event{kind: eventMapping, mapping: Mapping{
		OutputColumn:    outputColumn,
		SourceByteStart: sourceSpan.Start,
		Source:          sourceSpan.Source,
	}})
}

// CurrentColumn returns the builder's tracked output column, maintained by
// AddToColumn/AddNewLine.
func (b *Builder) CurrentColumn() uint32 { return b.currentColumn }

// CurrentLine returns the builder's tracked output line.
func (b *Builder) CurrentLine() uint32 { return b.currentLine }

// SourceMap is the finished product of a Build call: the compact
// "mappings" string plus the ordered list of sources it references.
type SourceMap struct {
	Mappings string
	Sources  []sourcefs.SourceId
}

// Build walks the event list once and emits the compact mappings string.
// Sources are read from reg exactly once, at the top of this call — a
// ProcessWide registry's lock is held only long enough to take this
// snapshot, never for the rest of Build.
//
// The source index within a segment is encoded as an absolute index
// (delta against 0) rather than a delta against the previous segment's
// source index. The V3 spec describes the latter; this module intentionally
// keeps the former, as recorded in DESIGN.md's Open Question decisions.
func (b *Builder) Build(reg sourcefs.Registry) SourceMap {
	lineStarts := make(map[sourcefs.SourceId]lines.Starts, len(b.sourceOrder))
	for _, id := range b.sourceOrder {
		reg.WithSource(id, func(src *sourcefs.Source) {
			lineStarts[id] = src.LineStarts
		})
	}

	var out strings.Builder

	const (
		breakNone = iota
		breakYes
		breakNo
	)
	lastWasBreak := breakNone
	var lastSourceLine, lastSourceColumn, lastOutputColumn int

	sourceIndexOf := make(map[sourcefs.SourceId]int, len(b.sourceOrder))
	for i, id := range b.sourceOrder {
		sourceIndexOf[id] = i
	}

	for _, ev := range b.events {
		switch ev.kind {
		case eventBreak:
			out.WriteByte(';')
			lastWasBreak = breakYes
			lastOutputColumn = 0
		case eventMapping:
			m := ev.mapping
			if m.Source.IsNull() {
				// Dropped entirely: no separator, no segment, as if this
				// event had never been appended.
				continue
			}
			if lastWasBreak == breakNo {
				out.WriteByte(',')
			}

			line, column := lineStarts[m.Source].LineAndColumnOf(int(m.SourceByteStart))

			sourceIndex := sourceIndexOf[m.Source]

			buf := make([]byte, 0, 16)
			buf = vlq.Encode(buf, int(m.OutputColumn)-lastOutputColumn)
			// Source index is encoded as a delta against 0, not against the
			// previous segment's index -- see DESIGN.md's Open Question
			// decision on absolute source-index encoding.
			buf = vlq.Encode(buf, sourceIndex)
			buf = vlq.Encode(buf, line-lastSourceLine)
			buf = vlq.Encode(buf, column-lastSourceColumn)
			out.Write(buf)

			lastOutputColumn = int(m.OutputColumn)
			lastSourceLine = line
			lastSourceColumn = column
			lastWasBreak = breakNo
		}
	}

	return SourceMap{Mappings: out.String(), Sources: b.sourceOrder}
}
