package span

import "sort"

// Compare orders two spans so that a slice of pairwise non-overlapping
// spans sorts into textual order: spans that intersect compare equal,
// otherwise the earlier span is less. This is intentional (see spec §4.D)
// and is NOT a total order in the strict mathematical sense — two spans
// that each intersect a third may not intersect each other. Callers MUST
// NOT use Compare (or SortSpans) as a key in an ordered map; it exists
// solely to move a set of known non-overlapping spans into order.
func Compare(a, b Span) int {
	if intersects(a, b) {
		return 0
	}
	if a.Start < b.Start {
		return -1
	}
	return 1
}

func intersects(a, b Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// SortSpans sorts spans in place using Compare. It is a stable heuristic
// sort suitable only for the non-overlapping case described above.
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return Compare(spans[i], spans[j]) < 0
	})
}
