package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialens/pkg/contracts/domain"
)

// TestNewStore verifies the tone/volume split and the derived parameter sets.
func TestNewStore(t *testing.T) {
	d := date(2023, time.April, 2)
	toneVolume := []domain.ToneVolumeRow{
		tvRow(d, "WSJ", "Economy", domain.MetricTone, -2),
		tvRow(d, "WSJ", "Economy", domain.MetricVolume, 40),
		tvRow(date(2024, time.April, 2), "CNN", "Elections", domain.MetricTone, -1),
	}
	topicShare := []domain.TopicShareRow{
		{Date: d, Year: 2023, Outlet: "WSJ", Topic: "Economy", Value: 40, TopicShare: 0.8},
	}

	store := NewStore(toneVolume, topicShare)

	tone, volume, share := store.Counts()
	assert.Equal(t, 2, tone)
	assert.Equal(t, 1, volume)
	assert.Equal(t, 1, share)

	assert.Equal(t, []string{"CNN", "WSJ"}, store.Outlets())
	assert.Equal(t, []string{"Economy", "Elections"}, store.Topics())
	assert.Equal(t, []int{2023, 2024}, store.Years())

	first, last := store.YearBounds()
	assert.Equal(t, 2023, first)
	assert.Equal(t, 2024, last)

	require.NotEmpty(t, store.SnapshotID())
	assert.False(t, store.LoadedAt().IsZero())
}

// TestNewStoreEmpty verifies zero-value behavior for an empty load.
func TestNewStoreEmpty(t *testing.T) {
	store := NewStore(nil, nil)

	first, last := store.YearBounds()
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, last)

	tone, volume, share := store.Counts()
	assert.Zero(t, tone)
	assert.Zero(t, volume)
	assert.Zero(t, share)
}

// TestStoreSnapshotIDsDiffer verifies each load gets its own snapshot ID.
func TestStoreSnapshotIDsDiffer(t *testing.T) {
	a := NewStore(nil, nil)
	b := NewStore(nil, nil)
	assert.NotEqual(t, a.SnapshotID(), b.SnapshotID())
}
