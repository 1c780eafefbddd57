// Package diag renders human-facing, caret-annotated source snippets for
// optional diagnostics at the boundary of the module: CLI output, LSP
// handler messages describing a stale mapping, and similar. It is never
// used by the core builder, which never formats text for humans.
package diag

import (
	"fmt"
	"strings"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/span"
)

// Snippet is a rendered excerpt: a handful of source lines around a span,
// with a caret line under the highlighted range and an optional trailing
// annotation and suggestion, in the style of a compiler error.
type Snippet struct {
	Path   string
	Line   int // 1-indexed
	Column int // 1-indexed, byte column
	Length int

	ContextLines []string // the lines displayed, including the highlighted one
	FirstLineNum int      // line number (1-indexed) of ContextLines[0]
	HighlightIdx int      // index into ContextLines of the highlighted line

	Annotation string
	Suggestion string
}

// Context is how many lines of surrounding source to show before and
// after the highlighted line, matching the teacher's renderer.
const Context = 2

// New renders a Snippet for sourceSpan against reg. Querying a span whose
// Start/End resolve onto different lines highlights the start line only;
// this renderer describes a position, not a multi-line region.
func New(reg sourcefs.Registry, sourceSpan span.SpanWithSource) Snippet {
	var snip Snippet
	reg.WithSource(sourceSpan.Source, func(src *sourcefs.Source) {
		line, column := src.LineStarts.LineAndColumnOf(int(sourceSpan.Start))
		length := int(sourceSpan.End - sourceSpan.Start)
		if length < 1 {
			length = 1
		}

		lineTexts := splitLines(src.Content)
		from := line - Context
		if from < 0 {
			from = 0
		}
		to := line + Context
		if to >= len(lineTexts) {
			to = len(lineTexts) - 1
		}

		snip = Snippet{
			Path:         src.Path,
			Line:         line + 1,
			Column:       column + 1,
			Length:       length,
			ContextLines: lineTexts[from : to+1],
			FirstLineNum: from + 1,
			HighlightIdx: line - from,
		}
	})
	return snip
}

// Annotate sets the text shown after the caret underline.
func (s Snippet) Annotate(format string, args ...interface{}) Snippet {
	s.Annotation = fmt.Sprintf(format, args...)
	return s
}

// Suggest attaches a multi-line suggestion block printed after the snippet.
func (s Snippet) Suggest(format string, args ...interface{}) Snippet {
	s.Suggestion = fmt.Sprintf(format, args...)
	return s
}

// Render formats the snippet as plain text: a "path:line:column" header,
// numbered source lines, and a caret line under the highlighted range.
func (s Snippet) Render() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s:%d:%d\n\n", s.Path, s.Line, s.Column)

	for i, text := range s.ContextLines {
		lineNum := s.FirstLineNum + i
		fmt.Fprintf(&buf, "  %4d | %s\n", lineNum, text)

		if i == s.HighlightIdx {
			indent := s.Column - 1
			if indent < 0 {
				indent = 0
			}
			fmt.Fprintf(&buf, "       | %s%s", strings.Repeat(" ", indent), strings.Repeat("^", s.Length))
			if s.Annotation != "" {
				fmt.Fprintf(&buf, " %s", s.Annotation)
			}
			buf.WriteByte('\n')
		}
	}

	if s.Suggestion != "" {
		fmt.Fprintf(&buf, "\nhelp: %s\n", s.Suggestion)
	}

	return buf.String()
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	return lines
}
