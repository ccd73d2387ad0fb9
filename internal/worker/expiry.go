// Package worker runs the periodic reservation expiry sweep.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yedam/studycafe-seat-reservation/internal/metrics"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
)

// ExpiryWorker flips overdue active reservations to completed on a fixed
// cadence.  ExpireDue is idempotent, so overlapping triggers (the ticker
// plus the manual HTTP endpoint) are harmless.
type ExpiryWorker struct {
	repo     *repository.ReservationRepo
	interval time.Duration
	log      zerolog.Logger
}

// NewExpiryWorker builds a worker sweeping every interval.
func NewExpiryWorker(repo *repository.ReservationRepo, interval time.Duration, log zerolog.Logger) *ExpiryWorker {
	return &ExpiryWorker{repo: repo, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// The immediate sweep mirrors the dashboard's behavior of expiring on load.
func (w *ExpiryWorker) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	if n := w.repo.ExpireDue(ctx); n > 0 {
		metrics.AddExpired(n)
		w.log.Info().Int("count", n).Msg("expired reservations completed")
	}
}
