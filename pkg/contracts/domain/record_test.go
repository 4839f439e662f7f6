package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDateLayout verifies the source timestamp format round-trips.
func TestDateLayout(t *testing.T) {
	parsed, err := time.Parse(DateLayout, "20250106T000000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, "20250106T000000Z", parsed.Format(DateLayout))
}

// TestParseMetric verifies the metric enumeration.
func TestParseMetric(t *testing.T) {
	tests := []struct {
		raw     string
		want    Metric
		wantErr bool
	}{
		{"tone", MetricTone, false},
		{"volume", MetricVolume, false},
		{"sentiment", "", true},
		{"", "", true},
		{"Tone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMetric(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestValidSmoothingWindow verifies the discrete window set.
func TestValidSmoothingWindow(t *testing.T) {
	for _, w := range SmoothingWindows {
		assert.True(t, ValidSmoothingWindow(w), "window %d", w)
	}
	for _, w := range []int{0, 2, 13, 45, 91, -7} {
		assert.False(t, ValidSmoothingWindow(w), "window %d", w)
	}
}
