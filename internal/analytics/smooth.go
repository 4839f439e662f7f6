package analytics

import (
	"sort"

	"medialens/pkg/contracts/domain"
)

type partitionKey struct {
	outlet string
	topic  string
}

// Smooth replaces each row's value with the trailing simple moving average
// over the prior window observations within its (outlet, topic) partition,
// ordered by date ascending. The first window-1 points of a partition use a
// shrinking window (minimum 1) rather than being dropped, and no look-ahead
// values contribute. A window of 1 is the identity and returns the input
// unchanged.
func Smooth(rows []domain.ToneVolumeRow, window int) []domain.ToneVolumeRow {
	if window <= 1 {
		return rows
	}

	out := make([]domain.ToneVolumeRow, len(rows))
	copy(out, rows)

	// Partition row indices by (outlet, topic). Mixing partitions when
	// averaging would blend unrelated series.
	partitions := make(map[partitionKey][]int)
	for i, r := range out {
		k := partitionKey{r.Outlet, r.Topic}
		partitions[k] = append(partitions[k], i)
	}

	for _, idx := range partitions {
		sort.SliceStable(idx, func(a, b int) bool {
			return out[idx[a]].Date.Before(out[idx[b]].Date)
		})

		values := make([]float64, len(idx))
		for pos, i := range idx {
			values[pos] = out[i].Value
		}

		var sum float64
		for pos, i := range idx {
			sum += values[pos]
			if pos >= window {
				sum -= values[pos-window]
			}
			n := pos + 1
			if n > window {
				n = window
			}
			out[i].Value = sum / float64(n)
		}
	}

	return out
}
