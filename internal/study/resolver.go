package study

import (
	"sort"
	"time"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// LatestOnOrBefore returns the most recent bar whose date does not exceed
// the target. Markets are closed on weekends and holidays, so an exact-date
// lookup routinely misses; this models "price as of the nearest prior
// trading session". Returns UnsatisfiableLookupError when the whole series
// is dated after the target.
func LatestOnOrBefore(series types.Series, target time.Time) (types.Bar, error) {
	idx := sort.Search(len(series.Bars), func(i int) bool {
		return series.Bars[i].Time.After(target)
	})
	if idx == 0 {
		return types.Bar{}, errors.NewUnsatisfiableLookupError(series.Symbol, target)
	}

	return series.Bars[idx-1], nil
}
