package sink

import (
	"strings"
	"testing"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/sourcemap"
	"github.com/mapforge/mapforge/pkg/span"
)

func serialize(t Sink) {
	t.PushString("Hello")
	t.Push(' ')
	t.PushString("World")
}

func TestPlainBufferConcatenation(t *testing.T) {
	b := NewPlainBuffer()
	serialize(b)
	if b.String() != "Hello World" {
		t.Errorf("got %q", b.String())
	}
}

func TestCounterCounting(t *testing.T) {
	c := NewCounter()
	serialize(c)
	if c.Count() != 11 {
		t.Errorf("count = %d, want 11", c.Count())
	}
}

func TestBufferedAdvancesBuilderColumn(t *testing.T) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource("f.txt", "hi there")

	builder := sourcemap.NewBuilder()
	s := NewBuffered(builder)

	s.AddMapping(span.SpanWithSource{Start: 0, End: 2, Source: src})
	s.PushString("hi")
	s.Push(' ')
	s.AddMapping(span.SpanWithSource{Start: 3, End: 8, Source: src})
	s.PushString("there")

	text, sm := s.Build(reg)
	if text != "hi there" {
		t.Fatalf("text = %q", text)
	}
	if strings.Count(sm.Mappings, ",") != 1 {
		t.Errorf("expected one comma separator, got %q", sm.Mappings)
	}
	// "hi" plus ' ' advance the column to 3, so the second segment's
	// output-column and source-column deltas are both 3 ("G").
	if sm.Mappings != "AAAA,GAAG" {
		t.Errorf("mappings = %q, want %q", sm.Mappings, "AAAA,GAAG")
	}
}

func TestBufferedNilBuilderIsNoOp(t *testing.T) {
	s := NewBuffered(nil)
	s.AddMapping(span.SpanWithSource{Start: 0, End: 1})
	s.PushString("ok")
	reg := sourcefs.NewScoped()
	text, sm := s.Build(reg)
	if text != "ok" {
		t.Fatalf("text = %q", text)
	}
	if sm.Mappings != "" || len(sm.Sources) != 0 {
		t.Fatalf("expected empty source map, got %+v", sm)
	}
}

func TestPushStringContainsNewLineFiresBreaksOnBuilder(t *testing.T) {
	reg := sourcefs.NewScoped()
	builder := sourcemap.NewBuilder()
	s := NewBuffered(builder)
	s.PushStringContainsNewLine("a\nb\nc")
	_, sm := s.Build(reg)
	if strings.Count(sm.Mappings, ";") != 2 {
		t.Errorf("expected two breaks, got %q", sm.Mappings)
	}
}

func TestCharactersOnCurrentLine(t *testing.T) {
	s := NewBuffered(nil)
	s.PushString("abc")
	if got := s.CharactersOnCurrentLine(); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	s.PushNewLine()
	if got := s.CharactersOnCurrentLine(); got != 0 {
		t.Errorf("got %d, want 0 right after newline", got)
	}
	s.PushString("de")
	if got := s.CharactersOnCurrentLine(); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestBoundedCounterLatches(t *testing.T) {
	c := NewBoundedCounter(4)
	if c.ShouldHalt() {
		t.Fatal("should not halt before any writes")
	}
	c.PushString("12345")
	if !c.ShouldHalt() {
		t.Fatal("should halt after exceeding max")
	}
	// Once halted, stays halted even though no more bytes are added.
	if !c.ShouldHalt() {
		t.Fatal("halt did not latch")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = &writeError{"boom"}

type writeError struct{ msg string }

func (e *writeError) Error() string { return e.msg }

func TestWriterBackedPoisonsOnError(t *testing.T) {
	w := NewWriterBacked(failingWriter{}, nil)
	w.PushString("x")
	if w.Err() == nil {
		t.Fatal("expected an error after a failing write")
	}
	// Further writes no-op rather than panicking.
	w.PushString("y")
	if w.Err() == nil {
		t.Fatal("expected the sticky error to remain set")
	}
}
