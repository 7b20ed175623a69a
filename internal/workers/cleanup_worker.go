package workers

import (
	"context"
	"time"

	"hirelink_backend/internal/config"
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/services"
)

// CleanupWorker enforces the notification retention policy with a
// daily delete of rows past their TTL.
type CleanupWorker struct {
	notifications services.NotificationService
	ttl           time.Duration
}

func NewCleanupWorker(notifications services.NotificationService) *CleanupWorker {
	cfg := config.GetConfig()
	return &CleanupWorker{
		notifications: notifications,
		ttl:           time.Duration(cfg.Workers.NotificationTTLDays) * 24 * time.Hour,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			if err := w.RunOnce(); err != nil {
				logger.WorkerLog("notification_cleanup", "delete_expired", err)
			}
		}
	}
}

func (w *CleanupWorker) RunOnce() error {
	deleted, err := w.notifications.DeleteExpired(time.Now().Add(-w.ttl))
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Info("expired notifications removed", "count", deleted)
	}
	return nil
}
