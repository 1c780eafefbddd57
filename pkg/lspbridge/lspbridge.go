// Package lspbridge converts between this module's UTF-8 line/column
// types and go.lsp.dev/protocol's LSP wire types. LSP positions are
// 0-based and UTF-16-code-unit-counted by spec; this bridge treats them
// as 0-based UTF-8-code-point positions instead, the same simplification
// the teacher's own translator makes for ASCII-heavy source.
package lspbridge

import (
	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/span"
	"go.lsp.dev/protocol"
	lspuri "go.lsp.dev/uri"
)

// ToProtocolPosition converts a resolved UTF-8 line/column position to an
// LSP Position. Both are already 0-based, so no offset adjustment is
// needed here — unlike the byte offsets the core packages work in.
func ToProtocolPosition(p span.LineColumnPosition[span.Utf8]) protocol.Position {
	return protocol.Position{Line: p.Line, Character: p.Column}
}

// FromProtocolPosition converts an LSP Position back to this module's
// line/column type, attaching it to source.
func FromProtocolPosition(pos protocol.Position, source sourcefs.SourceId) span.LineColumnPosition[span.Utf8] {
	return span.LineColumnPosition[span.Utf8]{
		Line:   pos.Line,
		Column: pos.Character,
		Source: source,
	}
}

// ToProtocolRange converts a resolved UTF-8 line/column span to an LSP
// Range.
func ToProtocolRange(s span.LineColumnSpan[span.Utf8]) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: s.LineStart, Character: s.ColumnStart},
		End:   protocol.Position{Line: s.LineEnd, Character: s.ColumnEnd},
	}
}

// FromProtocolRange converts an LSP Range back to this module's span type,
// attaching it to source.
func FromProtocolRange(r protocol.Range, source sourcefs.SourceId) span.LineColumnSpan[span.Utf8] {
	return span.LineColumnSpan[span.Utf8]{
		LineStart:   r.Start.Line,
		ColumnStart: r.Start.Character,
		LineEnd:     r.End.Line,
		ColumnEnd:   r.End.Character,
		Source:      source,
	}
}

// URIForPath converts a filesystem path to an LSP DocumentURI, mirroring
// the teacher's lspuri.File(path) call sites in pkg/lsp/translator.go.
func URIForPath(path string) protocol.DocumentURI {
	return protocol.DocumentURI(lspuri.File(path))
}

// PathForURI recovers a filesystem path from an LSP DocumentURI.
func PathForURI(u protocol.DocumentURI) string {
	return lspuri.URI(u).Filename()
}
