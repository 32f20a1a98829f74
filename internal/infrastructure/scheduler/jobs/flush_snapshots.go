// Package jobs contains implementations of scheduled jobs for the Zenith Admin Hub.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/snapshot"
)

// ══════════════════════════════════════════════════════════════════════════════
// FLUSH SNAPSHOTS JOB
// ══════════════════════════════════════════════════════════════════════════════

// FlushSnapshotsJob rewrites every collection snapshot from the live
// in-memory state. The write-through event handler already persists each
// mutation; this job is the safety net that repairs blobs after missed
// writes or a storage outage.
type FlushSnapshotsJob struct {
	stores snapshot.Stores
	blobs  snapshot.Store
	logger *slog.Logger

	// State
	lastStats atomic.Value // *FlushStats
}

// FlushStats describes the outcome of one flush run.
type FlushStats struct {
	StartedAt  time.Time
	Duration   time.Duration
	Flushed    int
	Failed     int
	TotalBytes int
	FailedKeys []string
}

// NewFlushSnapshotsJob creates a new flush job.
func NewFlushSnapshotsJob(stores snapshot.Stores, blobs snapshot.Store, logger *slog.Logger) *FlushSnapshotsJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlushSnapshotsJob{
		stores: stores,
		blobs:  blobs,
		logger: logger.With("job", "flush_snapshots"),
	}
}

// Name returns the unique name of the job.
func (j *FlushSnapshotsJob) Name() string {
	return "flush_snapshots"
}

// Description returns a human-readable description of the job.
func (j *FlushSnapshotsJob) Description() string {
	return "Rewrites all collection snapshots from in-memory state"
}

// Run executes the job. Per-collection failures are recorded and do not
// stop the remaining collections from flushing.
func (j *FlushSnapshotsJob) Run(ctx context.Context) error {
	stats := &FlushStats{StartedAt: time.Now()}

	for _, key := range snapshot.AllKeys {
		if err := ctx.Err(); err != nil {
			return err
		}

		blob, err := j.stores.Serialize(ctx, key)
		if err != nil {
			j.logger.Error("snapshot serialize failed", "collection", key, "error", err)
			stats.Failed++
			stats.FailedKeys = append(stats.FailedKeys, key)
			continue
		}

		if err := j.blobs.Save(ctx, key, blob); err != nil {
			j.logger.Error("snapshot save failed", "collection", key, "error", err)
			stats.Failed++
			stats.FailedKeys = append(stats.FailedKeys, key)
			continue
		}

		stats.Flushed++
		stats.TotalBytes += len(blob)
	}

	stats.Duration = time.Since(stats.StartedAt)
	j.lastStats.Store(stats)

	j.logger.Info("snapshots flushed",
		"flushed", stats.Flushed,
		"failed", stats.Failed,
		"bytes", stats.TotalBytes,
		"duration", stats.Duration.String(),
	)

	if stats.Failed > 0 {
		return fmt.Errorf("flush snapshots: %d of %d collections failed",
			stats.Failed, len(snapshot.AllKeys))
	}
	return nil
}

// LastStats returns the stats of the most recent run, or nil.
func (j *FlushSnapshotsJob) LastStats() *FlushStats {
	if v := j.lastStats.Load(); v != nil {
		return v.(*FlushStats)
	}
	return nil
}
