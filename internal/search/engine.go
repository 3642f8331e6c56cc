package search

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/avigneron/dexterm/internal/domain"
)

// MaxResults caps the result list shown under the search box.
const MaxResults = 8

// Result is one search hit, annotated with the capture status current
// at match time.
type Result struct {
	Entry    domain.CatalogEntry
	Captured bool

	// MatchStart/MatchEnd mark the matched substring within the name
	// for highlighting. Both are -1 when the hit came from the number
	// or from the fuzzy fallback.
	MatchStart int
	MatchEnd   int
}

// Engine matches free-text queries against the catalog by name or by
// decimal entry number. Matching is case-insensitive substring, first
// MaxResults hits in catalog order; when the substring pass comes up
// empty a ranked fuzzy pass supplies typo-tolerant suggestions.
type Engine struct {
	mu         sync.RWMutex
	entries    []domain.CatalogEntry
	lowerNames []string
	logger     *slog.Logger
}

// NewEngine creates an engine over the ordered catalog.
func NewEngine(entries []domain.CatalogEntry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{logger: logger}
	e.SetEntries(entries)
	return e
}

// SetEntries replaces the catalog index (used once names resolve).
func (e *Engine) SetEntries(entries []domain.CatalogEntry) {
	lower := make([]string, len(entries))
	for i, entry := range entries {
		lower[i] = strings.ToLower(entry.Name)
	}

	e.mu.Lock()
	e.entries = entries
	e.lowerNames = lower
	e.mu.Unlock()
}

// Match runs the query against the catalog. captured reports the
// capture status per entry number. An empty or blank query yields nil.
func (e *Engine) Match(query string, captured func(int) bool) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	results := e.substringPass(query, captured)
	if len(results) > 0 {
		return results
	}
	return e.fuzzyPass(query, captured)
}

// substringPass collects the first MaxResults entries whose name or
// decimal number contains the query, in catalog order.
func (e *Engine) substringPass(query string, captured func(int) bool) []Result {
	var results []Result
	for i, entry := range e.entries {
		start := strings.Index(e.lowerNames[i], query)
		byNumber := start < 0 && strings.Contains(strconv.Itoa(entry.Number), query)
		if start < 0 && !byNumber {
			continue
		}

		r := Result{Entry: entry, Captured: captured(entry.Number), MatchStart: -1, MatchEnd: -1}
		if start >= 0 {
			r.MatchStart = start
			r.MatchEnd = start + len(query)
		}
		results = append(results, r)
		if len(results) == MaxResults {
			break
		}
	}
	return results
}

// fuzzyPass ranks typo-tolerant name matches when no substring hit
// exists. Distance ascending, capped at MaxResults.
func (e *Engine) fuzzyPass(query string, captured func(int) bool) []Result {
	ranks := fuzzy.RankFindFold(query, e.lowerNames)
	if len(ranks) == 0 {
		return nil
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	results := make([]Result, 0, MaxResults)
	for _, rank := range ranks {
		entry := e.entries[rank.OriginalIndex]
		results = append(results, Result{
			Entry:      entry,
			Captured:   captured(entry.Number),
			MatchStart: -1,
			MatchEnd:   -1,
		})
		if len(results) == MaxResults {
			break
		}
	}
	e.logger.Debug("substring pass empty, served fuzzy suggestions", "query", query, "results", len(results))
	return results
}
