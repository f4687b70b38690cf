package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftdesk/client-portal/internal/api/metrics"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

const (
	defaultSweepInterval = time.Hour
	defaultSweepGrace    = 24 * time.Hour
)

// Sweeper reconciles the uploads directory against the file records.
// Blob writes and record inserts are two separate steps, so a crash
// between them leaves an orphaned blob; the sweep removes any blob with
// no record once it is older than the grace period. The grace period
// protects uploads whose record insert is still in flight.
type Sweeper struct {
	store    *DiskStore
	files    ports.FileRepository
	interval time.Duration
	grace    time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. Non-positive interval or grace fall back
// to the defaults.
func NewSweeper(store *DiskStore, files ports.FileRepository, interval, grace time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if grace <= 0 {
		grace = defaultSweepGrace
	}
	return &Sweeper{store: store, files: files, interval: interval, grace: grace, log: log}
}

// Start runs the sweep loop until ctx is cancelled. Call in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.SweepOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("orphan sweep failed")
				continue
			}
			if removed > 0 {
				s.log.Info().Int("removed", removed).Msg("orphaned blobs removed")
			}
		}
	}
}

// SweepOnce performs a single reconciliation pass and returns how many
// orphaned blobs were removed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	referenced, err := s.files.ListPaths(ctx)
	if err != nil {
		return 0, err
	}

	blobs, err := s.store.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.grace)
	removed := 0
	for _, blob := range blobs {
		if _, ok := referenced[blob.Name]; ok {
			continue
		}
		if blob.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Remove(blob.Name); err != nil {
			s.log.Warn().Err(err).Str("blob", blob.Name).Msg("failed to remove orphaned blob")
			continue
		}
		metrics.OrphanBlobsSweptTotal.Inc()
		removed++
	}
	return removed, nil
}
