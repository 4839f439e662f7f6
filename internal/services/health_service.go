package services

import (
	"context"
	"log/slog"
	"time"

	"medialens/internal/dataset"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	SnapshotID string `json:"snapshot_id"`
	LoadedAt   string `json:"loaded_at"`
	ToneRows   int    `json:"tone_rows"`
	VolumeRows int    `json:"volume_rows"`
	ShareRows  int    `json:"share_rows"`
	Uptime     string `json:"uptime"`
}

// HealthService reports process and dataset health.
type HealthService struct {
	store     *dataset.Store
	logger    *slog.Logger
	version   string
	startedAt time.Time
}

// NewHealthService creates a health service.
func NewHealthService(store *dataset.Store, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:     store,
		logger:    logger.With(slog.String("component", "health_service")),
		version:   version,
		startedAt: time.Now(),
	}
}

// Health returns the current status. The dataset is loaded before the server
// starts, so a running server always reports ok.
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	tone, volume, share := s.store.Counts()
	return HealthStatus{
		Status:     "ok",
		Version:    s.version,
		SnapshotID: s.store.SnapshotID(),
		LoadedAt:   s.store.LoadedAt().Format(time.RFC3339),
		ToneRows:   tone,
		VolumeRows: volume,
		ShareRows:  share,
		Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
	}
}
