package sourcemap

import (
	"strings"
	"testing"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/span"
)

func TestEmptyBuild(t *testing.T) {
	reg := sourcefs.NewScoped()
	sm := NewBuilder().Build(reg)
	if sm.Mappings != "" {
		t.Errorf("mappings = %q, want empty", sm.Mappings)
	}
	if len(sm.Sources) != 0 {
		t.Errorf("sources = %v, want empty", sm.Sources)
	}
	if got := sm.ToJSON(reg); got != `{"version":3,"sourceRoot":"","sources":[],"sourcesContent":[],"names":[],"mappings":""}` {
		t.Errorf("ToJSON = %q", got)
	}
}

func TestSingleCharMapping(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "a")

	b := NewBuilder()
	b.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	sm := b.Build(reg)

	if sm.Mappings != "AAAA" {
		t.Errorf("mappings = %q, want AAAA", sm.Mappings)
	}
	json := sm.ToJSON(reg)
	if !strings.Contains(json, `"sources":["f.txt"]`) {
		t.Errorf("json sources wrong: %s", json)
	}
	if !strings.Contains(json, `"sourcesContent":["a"]`) {
		t.Errorf("json sourcesContent wrong: %s", json)
	}
}

func TestCrossLineMapping(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "A\nB")

	b := NewBuilder()
	b.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	b.AddNewLine()
	b.AddMapping(span.SpanWithSource{Start: 2, End: 3, Source: src}, 0)
	sm := b.Build(reg)

	// "AAAA" then a break then the second segment, whose source line delta
	// is +1 and column delta is 0: "ACAA".
	want := "AAAA;ACAA"
	if sm.Mappings != want {
		t.Errorf("mappings = %q, want %q", sm.Mappings, want)
	}
}

func TestNullSourceSuppression(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "ab")

	withNull := NewBuilder()
	withNull.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	withNull.AddMapping(span.NullSpan, 1)
	withNull.AddMapping(span.SpanWithSource{Start: 1, End: 2, Source: src}, 1)
	gotWithNull := withNull.Build(reg)

	without := NewBuilder()
	without.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	without.AddMapping(span.SpanWithSource{Start: 1, End: 2, Source: src}, 1)
	gotWithout := without.Build(reg)

	if gotWithNull.Mappings != gotWithout.Mappings {
		t.Errorf("null mapping changed output: %q vs %q", gotWithNull.Mappings, gotWithout.Mappings)
	}
	for _, id := range gotWithNull.Sources {
		if id.IsNull() {
			t.Error("null source leaked into sources array")
		}
	}
}

func TestBreakSemantics(t *testing.T) {
	b := NewBuilder()
	b.AddNewLine()
	b.AddNewLine()
	b.AddNewLine()
	reg := sourcefs.NewScoped()
	sm := b.Build(reg)
	if got := strings.Count(sm.Mappings, ";"); got != 3 {
		t.Errorf("semicolons = %d, want 3", got)
	}
}

func TestSegmentSeparators(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "abcdef")

	b := NewBuilder()
	b.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	b.AddMapping(span.SpanWithSource{Start: 1, End: 2, Source: src}, 1)
	b.AddNewLine()
	b.AddMapping(span.SpanWithSource{Start: 2, End: 3, Source: src}, 0)
	sm := b.Build(reg)

	before, after, found := strings.Cut(sm.Mappings, ";")
	if !found {
		t.Fatalf("expected a break in %q", sm.Mappings)
	}
	if strings.Count(before, ",") != 1 {
		t.Errorf("expected exactly one comma before the break, got %q", before)
	}
	if strings.Contains(after, ",") {
		t.Errorf("expected no comma after the break (single mapping), got %q", after)
	}
}

func TestWhitespaceCollapseDemo(t *testing.T) {
	const input = "one two three four five six"
	reg := sourcefs.NewScoped()
	src := reg.NewSource("file.txt", input)

	words := strings.Fields(input)
	b := NewBuilder()
	var output strings.Builder
	offset := 0
	col := uint32(0)
	for i, w := range words {
		start := strings.Index(input[offset:], w) + offset
		end := start + len(w)
		b.AddMapping(span.SpanWithSource{Start: uint32(start), End: uint32(end), Source: src}, col)
		output.WriteString(w)
		col += uint32(len(w))
		if i != len(words)-1 {
			output.WriteByte(' ')
			col++
		}
		offset = end
	}

	if output.String() != input {
		t.Fatalf("collapsed output = %q, want %q", output.String(), input)
	}

	sm := b.Build(reg)
	if got := strings.Count(sm.Mappings, ","); got != len(words)-1 {
		t.Errorf("expected %d commas (one per extra word), got %d in %q", len(words)-1, got, sm.Mappings)
	}
	if strings.Contains(sm.Mappings, ";") {
		t.Errorf("single-line demo must not contain a break: %q", sm.Mappings)
	}
}

func TestInlineEnvelope(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "a")
	b := NewBuilder()
	b.AddMapping(span.SpanWithSource{Start: 0, End: 1, Source: src}, 0)
	sm := b.Build(reg)

	out := Inline("a", sm, reg)
	marker := "\n//# sourceMappingURL=data:application/json;base64,"
	idx := strings.Index(out, marker)
	if idx == -1 {
		t.Fatalf("inline comment not found in %q", out)
	}
	if strings.Count(out, marker) != 1 {
		t.Fatalf("expected exactly one inline comment marker")
	}
	if out[:idx] != "a" {
		t.Errorf("generated text prefix = %q, want %q", out[:idx], "a")
	}
}
