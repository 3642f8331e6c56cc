package search

// State is the keyboard-navigable result cursor. The cursor starts at
// -1 (nothing selected) and resets to -1 on every new result set;
// arrow movement wraps circularly through the results.
type State struct {
	Query   string
	Results []Result
	Cursor  int
}

// SetResults installs a new result set and resets the cursor.
func (s *State) SetResults(query string, results []Result) {
	s.Query = query
	s.Results = results
	s.Cursor = -1
}

// Clear empties the query, results and cursor.
func (s *State) Clear() {
	s.Query = ""
	s.Results = nil
	s.Cursor = -1
}

// MoveDown advances the cursor, wrapping from the last result to the
// first. A no-op when there are no results.
func (s *State) MoveDown() {
	if len(s.Results) == 0 {
		return
	}
	s.Cursor = (s.Cursor + 1) % len(s.Results)
}

// MoveUp retreats the cursor, wrapping from the first result (or the
// unselected state) to the last.
func (s *State) MoveUp() {
	if len(s.Results) == 0 {
		return
	}
	if s.Cursor <= 0 {
		s.Cursor = len(s.Results) - 1
		return
	}
	s.Cursor--
}

// Selected returns the result under the cursor, nil when the cursor is
// unset.
func (s *State) Selected() *Result {
	if s.Cursor < 0 || s.Cursor >= len(s.Results) {
		return nil
	}
	return &s.Results[s.Cursor]
}
