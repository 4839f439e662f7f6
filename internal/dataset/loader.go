package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"medialens/pkg/contracts/domain"
)

// Sources names the two input files. Either may be a .csv or an .xlsx
// (the upstream dataset is also distributed as a workbook export).
type Sources struct {
	ToneVolumeFile string
	TopicShareFile string
}

// Load reads both source tables, cleans them, and returns the immutable
// Store. The two files are read concurrently; any failure aborts the load.
func Load(ctx context.Context, src Sources, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	logger.InfoContext(ctx, "loading source tables",
		slog.String("tone_volume_file", src.ToneVolumeFile),
		slog.String("topic_share_file", src.TopicShareFile))

	var (
		toneVolume []domain.ToneVolumeRow
		topicShare []domain.TopicShareRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readToneVolume(gctx, src.ToneVolumeFile)
		if err != nil {
			return fmt.Errorf("tone/volume table: %w", err)
		}
		toneVolume = rows
		return nil
	})
	g.Go(func() error {
		rows, err := readTopicShare(gctx, src.TopicShareFile)
		if err != nil {
			return fmt.Errorf("topic share table: %w", err)
		}
		topicShare = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rawToneVolume := len(toneVolume)
	rawTopicShare := len(topicShare)

	toneVolume = cleanToneVolume(toneVolume)
	topicShare = cleanTopicShare(topicShare)

	store := NewStore(toneVolume, topicShare)

	logger.InfoContext(ctx, "source tables loaded and cleaned",
		slog.String("snapshot_id", store.SnapshotID()),
		slog.Int("tone_volume_raw", rawToneVolume),
		slog.Int("tone_volume_clean", len(toneVolume)),
		slog.Int("topic_share_raw", rawTopicShare),
		slog.Int("topic_share_clean", len(topicShare)),
		slog.String("duration", time.Since(start).String()))

	return store, nil
}

// readTable reads a row-oriented table from a CSV or XLSX file and returns
// the header plus data rows as strings.
func readTable(path string) ([]string, [][]string, error) {
	var records [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		records, err = f.GetRows(sheets[0])
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
		}
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return nil, nil, fmt.Errorf("read file content: %w", err)
		}
		// Strip UTF-8 BOM if present (Excel exports carry one).
		if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
			content = content[3:]
		}

		reader := csv.NewReader(strings.NewReader(string(content)))
		reader.FieldsPerRecord = -1
		records, err = reader.ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("read CSV: %w", err)
		}
	}

	if len(records) < 2 {
		return nil, nil, fmt.Errorf("table %s has no data rows", path)
	}
	return records[0], records[1:], nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

func readToneVolume(ctx context.Context, path string) ([]domain.ToneVolumeRow, error) {
	header, records, err := readTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, "date", "year", "outlet", "topic", "metric", "value")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ToneVolumeRow, 0, len(records))
	for i, rec := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		date, err := time.Parse(domain.DateLayout, field(rec, idx["date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date: %w", i+2, err)
		}
		year, err := strconv.Atoi(field(rec, idx["year"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse year: %w", i+2, err)
		}
		metric, err := domain.ParseMetric(field(rec, idx["metric"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		value, err := parseFloat(field(rec, idx["value"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse value: %w", i+2, err)
		}

		rows = append(rows, domain.ToneVolumeRow{
			Date:   date,
			Year:   year,
			Outlet: field(rec, idx["outlet"]),
			Topic:  field(rec, idx["topic"]),
			Metric: metric,
			Value:  value,
		})
	}
	return rows, nil
}

func readTopicShare(ctx context.Context, path string) ([]domain.TopicShareRow, error) {
	header, records, err := readTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, "date", "year", "outlet", "topic", "value", "topic_share")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TopicShareRow, 0, len(records))
	for i, rec := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		date, err := time.Parse(domain.DateLayout, field(rec, idx["date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date: %w", i+2, err)
		}
		year, err := strconv.Atoi(field(rec, idx["year"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse year: %w", i+2, err)
		}
		value, err := parseFloat(field(rec, idx["value"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse value: %w", i+2, err)
		}
		share, err := parseShare(field(rec, idx["topic_share"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse topic_share: %w", i+2, err)
		}

		rows = append(rows, domain.TopicShareRow{
			Date:       date,
			Year:       year,
			Outlet:     field(rec, idx["outlet"]),
			Topic:      field(rec, idx["topic"]),
			Value:      value,
			TopicShare: share,
		})
	}
	return rows, nil
}

// field returns the column at position i, tolerating short XLSX rows where
// trailing empty cells are omitted.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	return strconv.ParseFloat(s, 64)
}

// parseShare parses a topic_share field. An empty or "nan" field means the
// outlet's total volume was zero upstream; it is kept as NaN so cleaning can
// drop the row.
func parseShare(s string) (float64, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
