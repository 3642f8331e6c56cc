package paging

import (
	"errors"
	"fmt"

	"github.com/avigneron/dexterm/internal/domain"
)

// DefaultPageSize is the 4x4 grid the app ships with.
const DefaultPageSize = 16

// AllowedPageSizes are the grid sizes the UI offers. Anything else is
// rejected as a validation error.
var AllowedPageSizes = []int{4, 9, 16, 25, 36, 50}

var (
	// ErrPageOutOfRange indicates a goto-page request outside [1, totalPages]
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrBadPageSize indicates a page size outside the allowed set
	ErrBadPageSize = errors.New("unsupported page size")
)

// TotalPages returns ceil(total/pageSize), never less than 1 — an
// empty filter still renders one (empty) page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns the half-open [start, end) range of catalog indices
// for the given page. end never exceeds total; when total is 0 the
// slice is empty.
func PageSlice(page, pageSize, total int) (start, end int) {
	start = (page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

// State tracks the current page, page size, and the last-viewed page
// per filter. The zero value is not usable; construct with NewState.
//
// Invariant: Page is always within [1, TotalPages(total, PageSize)]
// for the active filter's total, re-clamped whenever the page size,
// the filter, or the underlying total changes.
type State struct {
	Page     int
	PageSize int
	Filter   domain.Filter

	// memory holds the last-viewed page per filter, so switching
	// ALL -> CAPTURED -> ALL lands back on the page you left.
	memory map[domain.Filter]int
}

// NewState returns a State on page 1 of FilterAll.
func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{
		Page:     1,
		PageSize: pageSize,
		Filter:   domain.FilterAll,
		memory:   make(map[domain.Filter]int),
	}
}

// Goto navigates directly to page. Out-of-range requests fail with
// ErrPageOutOfRange and leave the state untouched.
func (s *State) Goto(page, total int) error {
	if page < 1 || page > TotalPages(total, s.PageSize) {
		return fmt.Errorf("%w: %d (valid 1-%d)", ErrPageOutOfRange, page, TotalPages(total, s.PageSize))
	}
	s.Page = page
	return nil
}

// Next advances one page, clamped at the last page.
func (s *State) Next(total int) {
	if s.Page < TotalPages(total, s.PageSize) {
		s.Page++
	}
}

// Prev goes back one page, clamped at page 1.
func (s *State) Prev() {
	if s.Page > 1 {
		s.Page--
	}
}

// SetPageSize switches the grid size and re-clamps the current page so
// it stays within the recomputed page count. Remembered pages for
// other filters are dropped: their counts changed too.
func (s *State) SetPageSize(size, total int) error {
	ok := false
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrBadPageSize, size)
	}
	s.PageSize = size
	s.memory = make(map[domain.Filter]int)
	s.Clamp(total)
	return nil
}

// SetFilter saves the current page into the old filter's memory, then
// restores the new filter's remembered page (default 1), clamped
// against the new filter's total.
func (s *State) SetFilter(f domain.Filter, newTotal int) {
	if f == s.Filter {
		return
	}
	s.memory[s.Filter] = s.Page
	s.Filter = f

	page, ok := s.memory[f]
	if !ok {
		page = 1
	}
	s.Page = page
	s.Clamp(newTotal)
}

// Clamp forces the page back into [1, TotalPages]. Called after any
// mutation that can shrink the total, e.g. releasing a capture while
// the CAPTURED filter is active.
func (s *State) Clamp(total int) {
	last := TotalPages(total, s.PageSize)
	if s.Page > last {
		s.Page = last
	}
	if s.Page < 1 {
		s.Page = 1
	}
}

// Slice returns the half-open index range for the current page.
func (s *State) Slice(total int) (start, end int) {
	return PageSlice(s.Page, s.PageSize, total)
}

// PageFor returns the page a given 1-based entry position lands on.
func PageFor(position, pageSize int) int {
	if position < 1 || pageSize < 1 {
		return 1
	}
	return (position + pageSize - 1) / pageSize
}
