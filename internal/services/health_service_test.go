package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"medialens/internal/dataset"
)

// TestHealth verifies the health payload reflects the loaded store.
func TestHealth(t *testing.T) {
	store := testStore(t)
	svc := NewHealthService(store, "v9.9.9", nil)

	status := svc.Health(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v9.9.9", status.Version)
	assert.Equal(t, store.SnapshotID(), status.SnapshotID)
	assert.Equal(t, 4, status.ToneRows)
	assert.Equal(t, 4, status.VolumeRows)
	assert.Equal(t, 2, status.ShareRows)
	assert.NotEmpty(t, status.LoadedAt)
	assert.NotEmpty(t, status.Uptime)
}

// TestHealthEmptyStore verifies the endpoint still answers on an empty store.
func TestHealthEmptyStore(t *testing.T) {
	svc := NewHealthService(dataset.NewStore(nil, nil), "v1.0.0", nil)

	status := svc.Health(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Zero(t, status.ToneRows)
}
