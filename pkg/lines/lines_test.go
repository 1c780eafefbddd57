package lines

import "testing"

const sample = "Hello World\nI am a paragraph over two lines\nAnother line"

func TestMonotonicity(t *testing.T) {
	s := New(sample)
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			t.Fatalf("line_starts not strictly increasing at %d: %v", i, s)
		}
	}
	if s[len(s)-1] > len(sample) {
		t.Fatalf("last line start %d exceeds content length %d", s[len(s)-1], len(sample))
	}
}

func TestSplitting(t *testing.T) {
	s := New(sample)
	var rebuilt string
	for i := 0; i < len(s)-1; i++ {
		rebuilt += sample[s[i]:s[i+1]]
	}
	rebuilt += sample[s[len(s)-1]:]
	if rebuilt != sample {
		t.Fatalf("rebuilt content does not match:\n%q\n%q", rebuilt, sample)
	}
}

func TestLineAndColumnOf(t *testing.T) {
	s := New(sample)
	line, col := s.LineAndColumnOf(0)
	if line != 0 || col != 0 {
		t.Errorf("pos 0 -> (%d,%d), want (0,0)", line, col)
	}

	// "paragraph" starts at byte 19, on line 1.
	line, col = s.LineAndColumnOf(19)
	if line != 1 || col != 7 {
		t.Errorf("pos 19 -> (%d,%d), want (1,7)", line, col)
	}
}

func TestAppendEquivalence(t *testing.T) {
	const a = "one\ntwo\n"
	const b = "three\nfour"
	whole := New(a + b)
	split := New(a).Append(len(a), b)

	if len(whole) != len(split) {
		t.Fatalf("length mismatch: whole=%v split=%v", whole, split)
	}
	for i := range whole {
		if whole[i] != split[i] {
			t.Fatalf("index %d mismatch: whole=%v split=%v", i, whole, split)
		}
	}
}

func TestSameLineAndCrosses(t *testing.T) {
	s := New(sample)
	if !s.SameLine(0, 5) {
		t.Error("expected positions 0 and 5 to be on the same line")
	}
	if s.OnDifferentLines(0, 5) {
		t.Error("expected positions 0 and 5 not to cross a line")
	}

	// "Another" is on line 2; position 0 is on line 0.
	idx := len(sample) - len("Another line")
	if !s.OnDifferentLines(0, idx) {
		t.Error("expected positions across two newlines to be on different lines")
	}
	if got := s.Crosses(0, idx); got != 2 {
		t.Errorf("Crosses(0, %d) = %d, want 2", idx, got)
	}
}

func TestPrecondition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when p > q")
		}
	}()
	New(sample).SameLine(5, 0)
}

func TestNoNewlines(t *testing.T) {
	s := New("no newlines here")
	if len(s) != 1 || s[0] != 0 {
		t.Fatalf("expected single zero entry, got %v", s)
	}
}
