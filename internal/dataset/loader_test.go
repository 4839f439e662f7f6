package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const toneVolumeCSV = `date,year,outlet,topic,metric,value
20240105T000000Z,2024,CNN,Economy,tone,-3.4
20240105T000000Z,2024,CNN,Economy,volume,120
20240105T000000Z,2024,FoxNews,Economy,tone,-41.0
20240105T000000Z,2024,FoxNews,Economy,volume,2
20240106T000000Z,2024,CNN,Elections,tone,-1.1
20240106T000000Z,2024,CNN,Elections,volume,0
20260101T000000Z,2026,CNN,Economy,tone,-2.0
20260101T000000Z,2026,CNN,Economy,volume,50
`

const topicShareCSV = `date,year,outlet,topic,value,topic_share
20240105T000000Z,2024,CNN,Economy,120,0.62
20240105T000000Z,2024,CNN,Elections,0,0
20240106T000000Z,2024,CNN,Economy,80,
20260101T000000Z,2026,CNN,Economy,50,0.5
`

// TestLoad runs the full ingestion and cleaning pipeline against small CSV
// fixtures covering every cleaning rule.
func TestLoad(t *testing.T) {
	src := Sources{
		ToneVolumeFile: writeFile(t, "tone_volume.csv", toneVolumeCSV),
		TopicShareFile: writeFile(t, "topic_share.csv", topicShareCSV),
	}

	store, err := Load(context.Background(), src, nil)
	require.NoError(t, err)

	// Incomplete-year rows and the zero-volume Elections slice are gone;
	// the out-of-range FoxNews tone is clamped.
	tone := store.Tone()
	require.Len(t, tone, 2)
	assert.InDelta(t, -3.4, tone[0].Value, 1e-9)
	assert.Equal(t, "FoxNews", tone[1].Outlet)
	assert.InDelta(t, -10.0, tone[1].Value, 1e-9)

	volume := store.Volume()
	require.Len(t, volume, 2)

	// Zero-value and missing-share rows plus the incomplete year are gone.
	share := store.TopicShare()
	require.Len(t, share, 1)
	assert.InDelta(t, 0.62, share[0].TopicShare, 1e-9)

	assert.Equal(t, []string{"CNN", "FoxNews"}, store.Outlets())
	assert.Equal(t, []string{"Economy"}, store.Topics())
	assert.Equal(t, []int{2024}, store.Years())
	assert.NotEmpty(t, store.SnapshotID())
}

// TestLoadBOM verifies that a UTF-8 BOM on the first header cell is stripped.
func TestLoadBOM(t *testing.T) {
	src := Sources{
		ToneVolumeFile: writeFile(t, "tone_volume.csv", "\xEF\xBB\xBF"+toneVolumeCSV),
		TopicShareFile: writeFile(t, "topic_share.csv", topicShareCSV),
	}

	store, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	toneRows, _, _ := store.Counts()
	assert.Equal(t, 2, toneRows)
}

// TestLoadXLSX verifies the workbook ingestion path against the CSV path.
func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone_volume.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"date", "year", "outlet", "topic", "metric", "value"},
		{"20240105T000000Z", 2024, "CNN", "Economy", "tone", -3.4},
		{"20240105T000000Z", 2024, "CNN", "Economy", "volume", 120},
	}
	for i, row := range cells {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := Sources{
		ToneVolumeFile: path,
		TopicShareFile: writeFile(t, "topic_share.csv", topicShareCSV),
	}

	store, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	toneRows, volumeRows, _ := store.Counts()
	assert.Equal(t, 1, toneRows)
	assert.Equal(t, 1, volumeRows)
}

// TestLoadErrors verifies that malformed input aborts the load with a
// row-addressed error instead of silently skipping rows.
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		toneVolume string
		topicShare string
		wantErr    string
	}{
		{
			name:       "missing file",
			toneVolume: "",
			topicShare: topicShareCSV,
			wantErr:    "tone/volume table",
		},
		{
			name:       "missing required column",
			toneVolume: "date,year,outlet,topic,value\n20240105T000000Z,2024,CNN,Economy,1\n",
			topicShare: topicShareCSV,
			wantErr:    `missing required column "metric"`,
		},
		{
			name:       "bad date",
			toneVolume: "date,year,outlet,topic,metric,value\n2024-01-05,2024,CNN,Economy,tone,-1\n",
			topicShare: topicShareCSV,
			wantErr:    "row 2: parse date",
		},
		{
			name:       "unknown metric",
			toneVolume: "date,year,outlet,topic,metric,value\n20240105T000000Z,2024,CNN,Economy,sentiment,-1\n",
			topicShare: topicShareCSV,
			wantErr:    `unknown metric "sentiment"`,
		},
		{
			name:       "bad value",
			toneVolume: "date,year,outlet,topic,metric,value\n20240105T000000Z,2024,CNN,Economy,tone,abc\n",
			topicShare: topicShareCSV,
			wantErr:    "row 2: parse value",
		},
		{
			name:       "no data rows",
			toneVolume: "date,year,outlet,topic,metric,value\n",
			topicShare: topicShareCSV,
			wantErr:    "no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Sources{
				TopicShareFile: writeFile(t, "topic_share.csv", tt.topicShare),
			}
			if tt.toneVolume == "" {
				src.ToneVolumeFile = filepath.Join(t.TempDir(), "does_not_exist.csv")
			} else {
				src.ToneVolumeFile = writeFile(t, "tone_volume.csv", tt.toneVolume)
			}

			_, err := Load(context.Background(), src, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestParseShare verifies the missing-share encodings map to NaN.
func TestParseShare(t *testing.T) {
	for _, raw := range []string{"", "nan", "NaN", "NAN"} {
		got, err := parseShare(raw)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got), "raw=%q", raw)
	}

	got, err := parseShare("0.25")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)
}
