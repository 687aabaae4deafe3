package forecast

import (
	"math"

	"github.com/parishworks/vestry/internal/model"
)

// Goal-seek bounds and iteration budget for the global uplift search.
const (
	seekMin        = -0.5
	seekMax        = 2.0
	seekIterations = 40
	seekTolerance  = 0.01
)

// SeekGlobalPct binary-searches the single global uplift percentage that
// makes the projected grand total hit target, holding every other projection
// option fixed. The search is bounded to [-50%, +200%] and runs at most 40
// iterations. When the target lies outside what the bounds can reach, the
// nearest bound is returned with ok = false.
func SeekGlobalPct(actuals model.ReceiptMatrix, opts ProjectionOptions, target float64) (float64, bool) {
	totalAt := func(pct float64) float64 {
		opts.GlobalPct = pct
		return Project(actuals, opts).GrandTotal
	}

	lo, hi := seekMin, seekMax
	loTotal := totalAt(lo)
	hiTotal := totalAt(hi)

	// The grand total is monotonic in the uplift; its direction depends on
	// the sign of the underlying actuals.
	ascending := hiTotal >= loTotal

	within := func(total float64) bool {
		return math.Abs(total-target) <= seekTolerance
	}

	switch {
	case within(loTotal):
		return lo, true
	case within(hiTotal):
		return hi, true
	}

	if ascending {
		if target < loTotal {
			return lo, false
		}
		if target > hiTotal {
			return hi, false
		}
	} else {
		if target > loTotal {
			return lo, false
		}
		if target < hiTotal {
			return hi, false
		}
	}

	mid := 0.0
	for i := 0; i < seekIterations; i++ {
		mid = (lo + hi) / 2
		total := totalAt(mid)
		if within(total) {
			return mid, true
		}
		if (total < target) == ascending {
			lo = mid
		} else {
			hi = mid
		}
	}

	return mid, math.Abs(totalAt(mid)-target) <= seekTolerance
}
