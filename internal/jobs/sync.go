// Package jobs holds the background work the server runs on a timer.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Syncer replays the local sync journal to the remote store.
type Syncer interface {
	Run(ctx context.Context) (models.SyncReport, error)
}

// StartSync runs syncer once now and then every interval until ctx ends.
// Each run is bounded by timeout. A non-positive interval defaults to a
// minute.
func StartSync(ctx context.Context, syncer Syncer, interval, timeout time.Duration, log *slog.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		report, err := syncer.Run(runCtx)
		if err != nil {
			log.Error("sync job error", "err", err)
			return
		}
		if report.Failed > 0 {
			log.Warn("sync job stopped early", "replayed", report.Replayed, "pending", report.Pending)
		}
	}

	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
	return done
}
