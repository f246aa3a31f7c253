package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TopN sorts rows descending by metric and truncates to n. Equal metric
// values are broken by ascending key, so repeated calls over the same data
// always produce the same order even when decimal sums tie. n <= 0 yields an
// empty result; n beyond the row count returns everything. The second return
// value is the number of rows actually returned, which may be less than
// requested.
func TopN[T any](rows []T, metric func(T) decimal.Decimal, key func(T) string, n int) ([]T, int) {
	if n <= 0 {
		return []T{}, 0
	}

	ranked := make([]T, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := metric(ranked[i]), metric(ranked[j])
		if !mi.Equal(mj) {
			return mi.GreaterThan(mj)
		}
		return key(ranked[i]) < key(ranked[j])
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, len(ranked)
}
