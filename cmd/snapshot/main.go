// Command snapshot runs the ingestion and cleaning pipeline once and exports
// the cleaned tables plus the topic-by-year heatmap, without starting a
// server. Useful for inspecting what the dashboard will serve.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"medialens/internal/analytics"
	"medialens/internal/config"
	"medialens/internal/dataset"
	"medialens/internal/exporter"
	"medialens/internal/infrastructure"
	"medialens/pkg/contracts/domain"
)

func main() {
	if err := run(); err != nil {
		slog.Error("snapshot failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.ValidateSources(); err != nil {
		return fmt.Errorf("validate sources: %w", err)
	}

	store, err := dataset.Load(context.Background(), dataset.Sources{
		ToneVolumeFile: cfg.Data.ToneVolumeFile,
		TopicShareFile: cfg.Data.TopicShareFile,
	}, logger)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	w := exporter.NewWriter(cfg.Data.ExportDir, logger)

	if err := exportToneVolume(w, "tone_clean.csv", store.Tone()); err != nil {
		return err
	}
	if err := exportToneVolume(w, "volume_clean.csv", store.Volume()); err != nil {
		return err
	}
	if err := exportTopicShare(w, store.TopicShare()); err != nil {
		return err
	}

	heatmap := analytics.TopicYearStats(store.Tone())
	if err := w.WriteJSON("heatmap.json", heatmap); err != nil {
		return err
	}
	if err := exportHeatmap(w, heatmap); err != nil {
		return err
	}

	tone, volume, share := store.Counts()
	logger.Info("snapshot complete",
		slog.String("snapshot_id", store.SnapshotID()),
		slog.String("export_dir", cfg.Data.ExportDir),
		slog.Int("tone_rows", tone),
		slog.Int("volume_rows", volume),
		slog.Int("share_rows", share))
	return nil
}

func exportToneVolume(w *exporter.Writer, name string, rows []domain.ToneVolumeRow) error {
	headers := []string{"date", "year", "outlet", "topic", "metric", "value"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Date.Format(domain.DateLayout),
			strconv.Itoa(r.Year),
			r.Outlet,
			r.Topic,
			string(r.Metric),
			strconv.FormatFloat(r.Value, 'f', -1, 64),
		})
	}
	return w.WriteCSV(name, headers, records)
}

func exportTopicShare(w *exporter.Writer, rows []domain.TopicShareRow) error {
	headers := []string{"date", "year", "outlet", "topic", "value", "topic_share"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Date.Format(domain.DateLayout),
			strconv.Itoa(r.Year),
			r.Outlet,
			r.Topic,
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			strconv.FormatFloat(r.TopicShare, 'f', -1, 64),
		})
	}
	return w.WriteCSV("topic_share_clean.csv", headers, records)
}

func exportHeatmap(w *exporter.Writer, cells []domain.TopicYearCell) error {
	headers := []string{
		"year", "topic", "avg_tone", "std_tone", "n_days",
		"most_negative_outlet", "most_negative_value",
		"most_positive_outlet", "most_positive_value",
		"yoy_change", "yoy_label",
	}
	records := make([][]string, 0, len(cells))
	for _, c := range cells {
		records = append(records, []string{
			strconv.Itoa(c.Year),
			c.Topic,
			strconv.FormatFloat(c.AvgTone, 'f', 4, 64),
			strconv.FormatFloat(c.StdTone, 'f', 4, 64),
			strconv.Itoa(c.Days),
			c.MostNegativeOutlet,
			strconv.FormatFloat(c.MostNegativeTone, 'f', 4, 64),
			c.MostPositiveOutlet,
			strconv.FormatFloat(c.MostPositiveTone, 'f', 4, 64),
			strconv.FormatFloat(c.YoYChange, 'f', 4, 64),
			c.YoYLabel,
		})
	}
	return w.WriteCSV("heatmap.csv", headers, records)
}
