package store

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/salescope-lab/salescope/internal/core/engine"
)

// ErrSchemaMismatch is returned by sources when a required field is absent
// from the dataset. It is fatal at load time: an engine instance cannot
// serve any query without the full schema, so the failure is surfaced
// before the first query ever runs.
var ErrSchemaMismatch = errors.New("required field missing from dataset")

// Source loads a complete, validated snapshot of sale records.
type Source interface {
	LoadSnapshot(ctx context.Context) (*engine.Snapshot, error)
}

// SnapshotHolder publishes the current snapshot to concurrent readers.
// Replacement is an atomic pointer swap: queries running against the old
// snapshot finish undisturbed, and no reader ever observes a partially
// loaded one.
type SnapshotHolder struct {
	current atomic.Pointer[engine.Snapshot]
}

// NewSnapshotHolder creates a holder serving the given snapshot.
func NewSnapshotHolder(s *engine.Snapshot) *SnapshotHolder {
	h := &SnapshotHolder{}
	h.current.Store(s)
	return h
}

// Current returns the snapshot being served right now.
func (h *SnapshotHolder) Current() *engine.Snapshot {
	return h.current.Load()
}

// Swap atomically replaces the served snapshot.
func (h *SnapshotHolder) Swap(s *engine.Snapshot) {
	h.current.Store(s)
}
