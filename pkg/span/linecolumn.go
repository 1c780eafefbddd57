package span

import "github.com/mapforge/mapforge/pkg/sourcefs"

// LineColumnPosition is a zero-based (line, column) position under a
// selected Encoding, within a specific registered source.
type LineColumnPosition[E Encoding] struct {
	Line, Column uint32
	Source       sourcefs.SourceId
}

// LineColumnSpan is a zero-based (line, column) range under a selected
// Encoding, within a specific registered source.
type LineColumnSpan[E Encoding] struct {
	LineStart, ColumnStart uint32
	LineEnd, ColumnEnd     uint32
	Source                 sourcefs.SourceId
}

// IntoLineColumnPosition resolves p to a line/column position by looking up
// p's line in the registered source's line-start index and measuring the
// column under encoding E.
func IntoLineColumnPosition[E Encoding](p Position, reg sourcefs.Registry) LineColumnPosition[E] {
	var result LineColumnPosition[E]
	reg.WithSource(p.Source, func(src *sourcefs.Source) {
		line := src.LineStarts.LineOf(int(p.Offset))
		lineStartByte := src.LineStarts[line]
		var enc E
		column := enc.EncodedLength(src.Content[lineStartByte:p.Offset])
		result = LineColumnPosition[E]{
			Line:   uint32(line),
			Column: uint32(column),
			Source: p.Source,
		}
	})
	return result
}

// IntoScalarPosition is the inverse of IntoLineColumnPosition: given a line
// and a column under encoding E, it finds that line's start byte in the
// registry and advances Column units from there to recover the byte
// offset.
func (lp LineColumnPosition[E]) IntoScalarPosition(reg sourcefs.Registry) (Position, error) {
	var result Position
	var convErr error
	reg.WithSource(lp.Source, func(src *sourcefs.Source) {
		lineStartByte := src.LineStarts[lp.Line]
		var enc E
		advance := enc.EncodedLengthToByteCount(src.Content[lineStartByte:], int(lp.Column))
		offset, err := toUint32(lineStartByte + advance)
		if err != nil {
			convErr = err
			return
		}
		result = Position{Offset: offset, Source: lp.Source}
	})
	if convErr != nil {
		return Position{}, convErr
	}
	return result, nil
}

// IntoLineColumnSpan resolves both endpoints of s via the registered
// source's line-start index.
func IntoLineColumnSpan[E Encoding](s SpanWithSource, reg sourcefs.Registry) LineColumnSpan[E] {
	var result LineColumnSpan[E]
	reg.WithSource(s.Source, func(src *sourcefs.Source) {
		var enc E

		lineStart := src.LineStarts.LineOf(int(s.Start))
		lineStartByte := src.LineStarts[lineStart]
		columnStart := enc.EncodedLength(src.Content[lineStartByte:s.Start])

		lineEnd := src.LineStarts.LineOf(int(s.End))
		lineEndByte := src.LineStarts[lineEnd]
		columnEnd := enc.EncodedLength(src.Content[lineEndByte:s.End])

		result = LineColumnSpan[E]{
			LineStart:   uint32(lineStart),
			ColumnStart: uint32(columnStart),
			LineEnd:     uint32(lineEnd),
			ColumnEnd:   uint32(columnEnd),
			Source:      s.Source,
		}
	})
	return result
}

// IntoScalarSpan is the inverse of IntoLineColumnSpan.
func (ls LineColumnSpan[E]) IntoScalarSpan(reg sourcefs.Registry) (SpanWithSource, error) {
	var result SpanWithSource
	var convErr error
	reg.WithSource(ls.Source, func(src *sourcefs.Source) {
		var enc E

		lineStartByte := src.LineStarts[ls.LineStart]
		startAdvance := enc.EncodedLengthToByteCount(src.Content[lineStartByte:], int(ls.ColumnStart))
		start, err := toUint32(lineStartByte + startAdvance)
		if err != nil {
			convErr = err
			return
		}

		lineEndByte := src.LineStarts[ls.LineEnd]
		endAdvance := enc.EncodedLengthToByteCount(src.Content[lineEndByte:], int(ls.ColumnEnd))
		end, err := toUint32(lineEndByte + endAdvance)
		if err != nil {
			convErr = err
			return
		}

		result = SpanWithSource{Start: start, End: end, Source: ls.Source}
	})
	if convErr != nil {
		return SpanWithSource{}, convErr
	}
	return result, nil
}
