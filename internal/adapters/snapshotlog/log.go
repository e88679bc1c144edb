// Package snapshotlog holds the append-only, order-preserving record of
// pre-update rating snapshots emitted by the engine.
package snapshotlog

import (
	"context"
	"sync"

	"github.com/nicolasgoossens1/tennis-predictor/internal/domain/model"
	"github.com/nicolasgoossens1/tennis-predictor/pkg/metrics"
)

// Log is the append-only snapshot sequence. Snapshots arrive in
// processing order and are never mutated after the append.
type Log interface {
	Append(ctx context.Context, s model.Snapshot)
	All(ctx context.Context) []model.Snapshot
	Len(ctx context.Context) int
}

// MemLog implements Log in memory.
type MemLog struct {
	mu        sync.RWMutex
	snapshots []model.Snapshot
}

// NewMemLog constructs an empty in-memory snapshot log.
func NewMemLog() *MemLog {
	return &MemLog{}
}

// Append adds a snapshot at the end of the log.
func (l *MemLog) Append(ctx context.Context, s model.Snapshot) {
	l.mu.Lock()
	l.snapshots = append(l.snapshots, s)
	size := len(l.snapshots)
	l.mu.Unlock()

	metrics.UpdateSnapshotLogSize(size)
}

// All returns a copy of the log in append order.
func (l *MemLog) All(ctx context.Context) []model.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Snapshot, len(l.snapshots))
	copy(out, l.snapshots)
	return out
}

// Len returns the number of snapshots appended so far.
func (l *MemLog) Len(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.snapshots)
}
