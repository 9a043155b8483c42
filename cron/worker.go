package cron

import (
	"context"
	"errors"
	"fmt"

	"datekeeper/config"
	"datekeeper/services/scheduler"
	"datekeeper/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartReminderCron schedules the daily reminder run at the configured
// wall-clock time and returns the cron handle so main can stop it on
// shutdown. The job shares the scheduler's run guard with the manual
// trigger endpoint.
func StartReminderCron(sched scheduler.ReminderScheduler) (*cron.Cron, error) {
	logger := utils.GetLogger()
	spec := fmt.Sprintf("%d %d * * *", config.AppConfig.ReminderMinute, config.AppConfig.ReminderHour)

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := sched.Run(context.Background()); err != nil {
			if errors.Is(err, scheduler.ErrRunInProgress) {
				logger.Warn("Scheduled reminder run dropped, previous run still in flight")
				return
			}
			// Run failures are retried at the next daily trigger.
			logger.Error("Scheduled reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	c.Start()
	logger.Info("Reminder cron started",
		zap.Int("hour", config.AppConfig.ReminderHour),
		zap.Int("minute", config.AppConfig.ReminderMinute))
	return c, nil
}
