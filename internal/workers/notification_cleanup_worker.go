package workers

import (
	"context"
	"time"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/repositories"
)

// NotificationCleanupWorker deletes read notifications older than the
// retention window.
type NotificationCleanupWorker struct {
	notifications repositories.NotificationRepository
	interval      time.Duration
	retention     time.Duration
}

func NewNotificationCleanupWorker(notifications repositories.NotificationRepository, interval, retention time.Duration) *NotificationCleanupWorker {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &NotificationCleanupWorker{
		notifications: notifications,
		interval:      interval,
		retention:     retention,
	}
}

func (w *NotificationCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *NotificationCleanupWorker) cleanup() {
	count, err := w.notifications.DeleteReadOlderThan(time.Now().Add(-w.retention))
	logger.WorkerLog("notification_cleanup", "delete_read", err)
	if err == nil && count > 0 {
		logger.Info("cleaned up notifications", "count", count)
	}
}
