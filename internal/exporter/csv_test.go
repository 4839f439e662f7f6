package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteCSV verifies the BOM prefix, header and record layout.
func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	err := w.WriteCSV("out/heatmap.csv",
		[]string{"year", "topic", "avg_tone"},
		[][]string{
			{"2023", "Economy", "-3.2"},
			{"2024", "Economy", "-2.8"},
		})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "heatmap.csv"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "year,topic,avg_tone\n2023,Economy,-3.2\n2024,Economy,-2.8\n", string(data[3:]))
}

// TestWriteJSON verifies indented JSON output.
func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	payload := map[string]int{"tone_rows": 42}
	require.NoError(t, w.WriteJSON("counts.json", payload))

	data, err := os.ReadFile(filepath.Join(dir, "counts.json"))
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, payload, got)
}
