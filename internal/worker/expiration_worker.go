// Package worker holds the background loops that run beside the HTTP
// server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
)

// ExpirationWorker sweeps pending payments whose hosted checkout session
// can no longer complete. A row only stays pending forever when the
// processor never delivers a terminal event for it, usually because the
// guest abandoned the checkout page; the sweep moves those rows to
// expired so the single-pending rule does not lock the owner out.
type ExpirationWorker struct {
	payments   application.PaymentRepository
	gifts      application.GiftRepository
	sessionTTL time.Duration
	interval   time.Duration
	batchSize  int
	logger     *slog.Logger
}

func NewExpirationWorker(
	payments application.PaymentRepository,
	gifts application.GiftRepository,
	sessionTTL time.Duration,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *ExpirationWorker {
	return &ExpirationWorker{
		payments:   payments,
		gifts:      gifts,
		sessionTTL: sessionTTL,
		interval:   interval,
		batchSize:  batchSize,
		logger:     logger,
	}
}

func (w *ExpirationWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting expiration worker",
		"interval", w.interval, "session_ttl", w.sessionTTL, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping expiration worker")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep cycle.
func (w *ExpirationWorker) RunOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-w.sessionTTL)

	swept, err := w.payments.ExpirePendingBefore(ctx, cutoff, w.batchSize)
	if err != nil {
		w.logger.Error("failed to sweep stale publication payments", "error", err)
	} else if swept > 0 {
		w.logger.Info("expired stale publication payments", "count", swept)
	}

	swept, err = w.gifts.ExpirePendingBefore(ctx, cutoff, w.batchSize)
	if err != nil {
		w.logger.Error("failed to sweep stale gift payments", "error", err)
	} else if swept > 0 {
		w.logger.Info("expired stale gift payments", "count", swept)
	}
}
