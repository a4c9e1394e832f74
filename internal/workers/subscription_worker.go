package workers

import (
	"context"
	"time"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/repositories"
)

// SubscriptionWorker periodically deactivates subscriptions whose end
// date has passed.
type SubscriptionWorker struct {
	payments repositories.PaymentRepository
	interval time.Duration
}

func NewSubscriptionWorker(payments repositories.PaymentRepository, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{payments: payments, interval: interval}
}

func (w *SubscriptionWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.expire()
	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *SubscriptionWorker) expire() {
	count, err := w.payments.ExpireSubscriptions(time.Now())
	logger.WorkerLog("subscription", "expire", err)
	if err == nil && count > 0 {
		logger.Info("expired subscriptions", "count", count)
	}
}
