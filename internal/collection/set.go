package collection

import "sort"

// Set is the set of captured entry numbers. Membership is boolean, not
// a counter: capturing an already-captured entry is a no-op.
type Set map[int]struct{}

// NewSet builds a set from a list of entry numbers (duplicates fold).
func NewSet(numbers []int) Set {
	s := make(Set, len(numbers))
	for _, n := range numbers {
		s[n] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(n int) bool {
	_, ok := s[n]
	return ok
}

// Add inserts n. Idempotent.
func (s Set) Add(n int) { s[n] = struct{}{} }

// Remove deletes n. Idempotent.
func (s Set) Remove(n int) { delete(s, n) }

// Toggle flips membership and reports whether n is now captured.
func (s Set) Toggle(n int) bool {
	if s.Has(n) {
		s.Remove(n)
		return false
	}
	s.Add(n)
	return true
}

// Len returns the number of captured entries.
func (s Set) Len() int { return len(s) }

// Sorted returns the captured entry numbers ascending. This is the
// render order for the CAPTURED filter.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
