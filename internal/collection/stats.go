package collection

import (
	"math"

	"github.com/avigneron/dexterm/internal/domain"
)

// ComputeStats derives collection statistics. Percentage rounds to the
// nearest integer (not floor/ceil) so the display bands at 100/75/50
// line up with what users expect.
func ComputeStats(count, total int) domain.CollectionStats {
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(count) / float64(total)))
	}
	return domain.CollectionStats{
		Count:      count,
		Percentage: pct,
		Remaining:  total - count,
	}
}
