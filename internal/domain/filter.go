package domain

// Filter selects which subset of the catalog is rendered.
type Filter int

const (
	FilterAll Filter = iota
	FilterCaptured
)

// String returns the wire/display name of the filter.
func (f Filter) String() string {
	switch f {
	case FilterCaptured:
		return "captured"
	default:
		return "all"
	}
}

// ParseFilter maps a persisted filter name back to a Filter. Unknown
// values fall back to FilterAll so a stale record never wedges the UI.
func ParseFilter(s string) Filter {
	if s == "captured" {
		return FilterCaptured
	}
	return FilterAll
}

// Toggle returns the other filter state.
func (f Filter) Toggle() Filter {
	if f == FilterAll {
		return FilterCaptured
	}
	return FilterAll
}
