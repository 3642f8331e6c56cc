package search

import (
	"testing"

	"github.com/avigneron/dexterm/internal/domain"
)

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{Number: 1, Name: "Bulbizarre"},
		{Number: 4, Name: "Salamèche"},
		{Number: 7, Name: "Carapuce"},
		{Number: 25, Name: "Pikachu"},
		{Number: 26, Name: "Raichu"},
		{Number: 250, Name: "Ho-Oh"},
		{Number: 252, Name: "Arcko"},
	}
}

func noneCaptured(int) bool { return false }

func TestMatchByNameSubstring(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	results := e.Match("chu", noneCaptured)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Entry.Number != 25 || results[1].Entry.Number != 26 {
		t.Errorf("results out of catalog order: %v, %v", results[0].Entry, results[1].Entry)
	}
	// "chu" sits at index 4 of "pikachu"
	if results[0].MatchStart != 4 || results[0].MatchEnd != 7 {
		t.Errorf("match range = [%d, %d), want [4, 7)", results[0].MatchStart, results[0].MatchEnd)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	for _, q := range []string{"PIKA", "pika", "PiKa"} {
		results := e.Match(q, noneCaptured)
		if len(results) != 1 || results[0].Entry.Number != 25 {
			t.Errorf("Match(%q) = %v, want Pikachu", q, results)
		}
	}
}

func TestMatchByNumberSubstring(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	// "25" matches #25 and #250 and #252 by decimal substring.
	results := e.Match("25", noneCaptured)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []int{25, 250, 252}
	for i, w := range want {
		if results[i].Entry.Number != w {
			t.Errorf("results[%d] = #%d, want #%d", i, results[i].Entry.Number, w)
		}
	}
	// Number hits carry no name-highlight range.
	if results[0].MatchStart != -1 {
		t.Errorf("number match should not set MatchStart, got %d", results[0].MatchStart)
	}
}

func TestMatchAnnotatesCaptureStatus(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	captured := func(n int) bool { return n == 25 }
	results := e.Match("chu", captured)
	if !results[0].Captured {
		t.Error("Pikachu should be annotated captured")
	}
	if results[1].Captured {
		t.Error("Raichu should not be annotated captured")
	}
}

func TestMatchResultLimit(t *testing.T) {
	entries := make([]domain.CatalogEntry, 30)
	for i := range entries {
		entries[i] = domain.CatalogEntry{Number: i + 1, Name: "Mime"}
	}
	e := NewEngine(entries, nil)

	results := e.Match("mime", noneCaptured)
	if len(results) != MaxResults {
		t.Errorf("got %d results, want cap of %d", len(results), MaxResults)
	}
	// First K in catalog order.
	for i, r := range results {
		if r.Entry.Number != i+1 {
			t.Errorf("results[%d] = #%d, want #%d", i, r.Entry.Number, i+1)
		}
	}
}

func TestMatchEmptyQuery(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	for _, q := range []string{"", "   ", "\t"} {
		if results := e.Match(q, noneCaptured); results != nil {
			t.Errorf("Match(%q) = %v, want nil", q, results)
		}
	}
}

func TestMatchFuzzyFallback(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	// No substring hit, but close enough for the fuzzy pass.
	results := e.Match("pkachu", noneCaptured)
	if len(results) == 0 {
		t.Fatal("expected fuzzy suggestions for a near-miss query")
	}
	if results[0].Entry.Number != 25 {
		t.Errorf("best suggestion = %v, want Pikachu", results[0].Entry)
	}
	if results[0].MatchStart != -1 {
		t.Error("fuzzy results must not claim a highlight range")
	}
}

func TestMatchNoResults(t *testing.T) {
	e := NewEngine(testCatalog(), nil)

	if results := e.Match("zzzzqqq", noneCaptured); len(results) != 0 {
		t.Errorf("got %v, want none", results)
	}
}

func TestCursorWrapsCircularly(t *testing.T) {
	e := NewEngine(testCatalog(), nil)
	var s State
	s.SetResults("chu", e.Match("chu", noneCaptured)) // 2 results

	if s.Cursor != -1 {
		t.Fatalf("fresh cursor = %d, want -1", s.Cursor)
	}

	s.MoveDown()
	if s.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor)
	}
	s.MoveDown()
	if s.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.Cursor)
	}
	s.MoveDown() // wrap last -> first
	if s.Cursor != 0 {
		t.Errorf("cursor = %d after wrap down, want 0", s.Cursor)
	}
	s.MoveUp() // wrap first -> last
	if s.Cursor != 1 {
		t.Errorf("cursor = %d after wrap up, want 1", s.Cursor)
	}
}

func TestCursorResetOnNewResults(t *testing.T) {
	e := NewEngine(testCatalog(), nil)
	var s State
	s.SetResults("chu", e.Match("chu", noneCaptured))
	s.MoveDown()

	s.SetResults("cara", e.Match("cara", noneCaptured))
	if s.Cursor != -1 {
		t.Errorf("cursor = %d after new result set, want -1", s.Cursor)
	}
	if s.Selected() != nil {
		t.Error("Selected() should be nil with unset cursor")
	}
}

func TestSelected(t *testing.T) {
	e := NewEngine(testCatalog(), nil)
	var s State
	s.SetResults("chu", e.Match("chu", noneCaptured))

	s.MoveDown()
	sel := s.Selected()
	if sel == nil || sel.Entry.Number != 25 {
		t.Errorf("Selected() = %v, want Pikachu", sel)
	}
}
