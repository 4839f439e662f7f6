package dataset

import (
	"math"
	"time"

	"medialens/pkg/contracts/domain"
)

// incompleteYear is the most recent partial year in the source data. It
// carries a single day of observations and would skew every year-level
// aggregate, so it is removed outright.
const incompleteYear = 2026

// blackoutDate is a documented full-pipeline ingestion failure upstream:
// every outlet reports garbage for this one day.
var blackoutDate = time.Date(2025, time.December, 6, 0, 0, 0, 0, time.UTC)

// tvKey identifies one (date, outlet, topic) slice of the tone/volume table.
type tvKey struct {
	date   time.Time
	outlet string
	topic  string
}

// cleanToneVolume applies the cleaning steps to the long-form table. A zero
// volume means the outlet published no articles for that slice, so the
// paired tone row is statistically meaningless and both rows are removed as
// a unit.
func cleanToneVolume(rows []domain.ToneVolumeRow) []domain.ToneVolumeRow {
	// Pass 1: collect the (date, outlet, topic) keys with zero volume.
	zeroVolume := make(map[tvKey]struct{})
	for _, r := range rows {
		if r.Metric == domain.MetricVolume && r.Value == 0 {
			zeroVolume[tvKey{r.Date, r.Outlet, r.Topic}] = struct{}{}
		}
	}

	out := make([]domain.ToneVolumeRow, 0, len(rows))
	for _, r := range rows {
		if r.Year == incompleteYear {
			continue
		}
		if _, gone := zeroVolume[tvKey{r.Date, r.Outlet, r.Topic}]; gone {
			continue
		}
		if r.Date.Equal(blackoutDate) {
			continue
		}
		if r.Metric == domain.MetricTone {
			r.Value = clampTone(r.Value)
		}
		out = append(out, r)
	}
	return out
}

// cleanTopicShare removes rows with a zero raw value or a missing share
// (both mean the underlying volume was zero), the incomplete year, and the
// blackout date.
func cleanTopicShare(rows []domain.TopicShareRow) []domain.TopicShareRow {
	out := make([]domain.TopicShareRow, 0, len(rows))
	for _, r := range rows {
		if r.Year == incompleteYear {
			continue
		}
		if r.Value == 0 || math.IsNaN(r.TopicShare) {
			continue
		}
		if r.Date.Equal(blackoutDate) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// clampTone bounds a tone reading to [ToneMin, ToneMax]. Out-of-range values
// are extreme but presumed valid measurements from low-article-count days;
// clamping keeps the row while bounding its influence.
func clampTone(v float64) float64 {
	if v < domain.ToneMin {
		return domain.ToneMin
	}
	if v > domain.ToneMax {
		return domain.ToneMax
	}
	return v
}
