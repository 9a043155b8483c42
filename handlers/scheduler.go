package handlers

import (
	"errors"
	"net/http"

	"datekeeper/services/scheduler"
	"datekeeper/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulerHandler exposes the manual "run now" trigger used for testing and
// administration. It reuses the exact run path of the daily cron job.
type SchedulerHandler struct {
	Scheduler scheduler.ReminderScheduler
}

func NewSchedulerHandler(sched scheduler.ReminderScheduler) *SchedulerHandler {
	return &SchedulerHandler{Scheduler: sched}
}

// RunNowHandler handles POST /api/scheduler/run.
func (h *SchedulerHandler) RunNowHandler(c *gin.Context) {
	logger := utils.GetLogger()
	summary, err := h.Scheduler.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "a reminder run is already in progress"})
			return
		}
		logger.Error("Manual reminder run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "summary": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}
