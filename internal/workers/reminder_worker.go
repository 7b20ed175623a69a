package workers

import (
	"context"
	"time"

	"hirelink_backend/internal/config"
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/services"
)

// ReminderWorker pushes interview reminders ahead of the scheduled
// time. Each sweep picks up every accepted interview inside the
// lookahead window, so an interview close to the window edge may be
// reminded on two consecutive sweeps. Accepted for now; a sent-marker
// column would fix it if it ever bothers users.
type ReminderWorker struct {
	interviewRepo repositories.InterviewRepository
	notifier      services.NotifierService
	interval      time.Duration
	lookahead     time.Duration
}

func NewReminderWorker(interviewRepo repositories.InterviewRepository, notifier services.NotifierService) *ReminderWorker {
	cfg := config.GetConfig()
	return &ReminderWorker{
		interviewRepo: interviewRepo,
		notifier:      notifier,
		interval:      time.Duration(cfg.Workers.ReminderIntervalMinutes) * time.Minute,
		lookahead:     time.Duration(cfg.Workers.ReminderLookaheadHours) * time.Hour,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ReminderWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			count, err := w.Sweep()
			if err != nil {
				logger.WorkerLog("interview_reminder", "sweep", err)
			} else if count > 0 {
				logger.Info("reminder sweep completed", "reminded", count)
			}
		}
	}
}

// Sweep reminds both parties of every accepted interview starting
// inside the lookahead window. One broken interview never blocks the
// rest of the batch.
func (w *ReminderWorker) Sweep() (int, error) {
	now := time.Now()
	interviews, err := w.interviewRepo.FindUpcomingAccepted(now, now.Add(w.lookahead))
	if err != nil {
		return 0, err
	}

	reminded := 0
	for i := range interviews {
		if err := w.notifier.NotifyInterviewReminder(&interviews[i]); err != nil {
			logger.Error("failed to send interview reminder",
				"interview_id", interviews[i].ID, "error", err.Error())
			continue
		}
		reminded++
	}
	return reminded, nil
}
