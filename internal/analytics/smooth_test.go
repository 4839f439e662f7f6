package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialens/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func toneRow(d int, outlet, topic string, value float64) domain.ToneVolumeRow {
	return domain.ToneVolumeRow{
		Date:   day(d),
		Year:   2024,
		Outlet: outlet,
		Topic:  topic,
		Metric: domain.MetricTone,
		Value:  value,
	}
}

// TestSmoothIdentity verifies that a window of 1 leaves the series untouched.
func TestSmoothIdentity(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(1, "CNN", "Economy", -2),
		toneRow(2, "CNN", "Economy", 4),
	}
	got := Smooth(rows, 1)
	assert.Equal(t, rows, got)
}

// TestSmoothShrinkingWindow verifies the trailing average with a shrinking
// initial window: a 3-point series under any window larger than the series
// yields the running mean.
func TestSmoothShrinkingWindow(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(1, "CNN", "Economy", 1),
		toneRow(2, "CNN", "Economy", 2),
		toneRow(3, "CNN", "Economy", 3),
	}
	got := Smooth(rows, 30)

	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0].Value, 1e-9)
	assert.InDelta(t, 1.5, got[1].Value, 1e-9)
	assert.InDelta(t, 2.0, got[2].Value, 1e-9)
}

// TestSmoothTrailingWindow verifies that once the series is longer than the
// window, only the trailing window observations contribute.
func TestSmoothTrailingWindow(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(1, "CNN", "Economy", 10),
		toneRow(2, "CNN", "Economy", 0),
		toneRow(3, "CNN", "Economy", 0),
		toneRow(4, "CNN", "Economy", 0),
	}
	got := Smooth(rows, 2)

	require.Len(t, got, 4)
	assert.InDelta(t, 10.0, got[0].Value, 1e-9) // only itself
	assert.InDelta(t, 5.0, got[1].Value, 1e-9)  // (10+0)/2
	assert.InDelta(t, 0.0, got[2].Value, 1e-9)  // (0+0)/2, day 1 dropped
	assert.InDelta(t, 0.0, got[3].Value, 1e-9)
}

// TestSmoothPartitions verifies that outlet/topic partitions never blend.
func TestSmoothPartitions(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(1, "CNN", "Economy", 2),
		toneRow(1, "FoxNews", "Economy", -8),
		toneRow(2, "CNN", "Economy", 4),
		toneRow(2, "FoxNews", "Economy", -4),
		toneRow(1, "CNN", "Elections", 100),
	}
	got := Smooth(rows, 7)

	byKey := make(map[string]float64)
	for _, r := range got {
		byKey[r.Outlet+"/"+r.Topic+"/"+r.Date.Format("02")] = r.Value
	}

	assert.InDelta(t, 2.0, byKey["CNN/Economy/01"], 1e-9)
	assert.InDelta(t, 3.0, byKey["CNN/Economy/02"], 1e-9)
	assert.InDelta(t, -8.0, byKey["FoxNews/Economy/01"], 1e-9)
	assert.InDelta(t, -6.0, byKey["FoxNews/Economy/02"], 1e-9)
	assert.InDelta(t, 100.0, byKey["CNN/Elections/01"], 1e-9)
}

// TestSmoothNoLookAhead verifies smoothing is strictly trailing: the first
// point is unaffected by later values, whatever the input order.
func TestSmoothNoLookAhead(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(3, "WSJ", "Government", 9),
		toneRow(1, "WSJ", "Government", -3),
		toneRow(2, "WSJ", "Government", 6),
	}
	got := Smooth(rows, 7)

	for _, r := range got {
		if r.Date.Equal(day(1)) {
			assert.InDelta(t, -3.0, r.Value, 1e-9)
		}
	}
}

// TestSmoothDoesNotMutateInput verifies the input slice is left intact for
// windows larger than 1.
func TestSmoothDoesNotMutateInput(t *testing.T) {
	rows := []domain.ToneVolumeRow{
		toneRow(1, "CNN", "Economy", 1),
		toneRow(2, "CNN", "Economy", 5),
	}
	_ = Smooth(rows, 7)

	assert.InDelta(t, 1.0, rows[0].Value, 1e-9)
	assert.InDelta(t, 5.0, rows[1].Value, 1e-9)
}
