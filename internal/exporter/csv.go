// Package exporter writes cleaned and derived tables to CSV and JSON files
// for offline use of the pipeline (the snapshot tool).
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer exports tables into a target directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates an export writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger.With(slog.String("component", "exporter"))}
}

// WriteCSV writes headers plus records to name inside the export directory.
// A UTF-8 BOM is prepended so Excel opens the file correctly.
func (w *Writer) WriteCSV(name string, headers []string, records [][]string) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}

	w.logger.Info("CSV exported",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return nil
}

// WriteJSON writes v as indented JSON to name inside the export directory.
func (w *Writer) WriteJSON(name string, v interface{}) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info("JSON exported", slog.String("path", path))
	return nil
}
