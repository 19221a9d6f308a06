package health

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/swappy/internal/monitoring"
)

// consecutive failures after which a critical job makes the service unhealthy
const criticalFailureThreshold = 3

var criticalJobs = []string{
	monitoring.SwapExecutionIndexingJob,
}

// Jobs godoc
// @Summary Background jobs health check
// @Description Reports the status of scheduled jobs. Degraded jobs answer 206.
// @Tags Health
// @Produce json
// @Success 200 {object} JobsHealthResponse
// @Success 206 {object} JobsHealthResponse
// @Failure 503 {object} JobsHealthResponse
// @Router /health/jobs [get]
func (h *HealthHandler) Jobs(c *gin.Context) {
	start := time.Now()

	if h.jobStatusManager == nil {
		c.JSON(http.StatusOK, JobsHealthResponse{
			Status:     statusHealthy,
			Timestamp:  start,
			Jobs:       map[string]monitoring.JobStatus{},
			DurationMs: time.Since(start).Milliseconds(),
		})
		return
	}

	jobs := h.jobStatusManager.GetAllJobStatuses()
	summary := h.jobStatusManager.GetJobsSummary()

	status := statusHealthy
	switch {
	case summary.StalledJobs > 0 || criticalJobFailing(jobs):
		status = statusUnhealthy
	case summary.UnhealthyJobs > 0:
		status = statusDegraded
	}

	response := JobsHealthResponse{
		Status:     status,
		Timestamp:  start,
		Jobs:       jobs,
		Summary:    summary,
		DurationMs: time.Since(start).Milliseconds(),
	}

	h.logger.Info("[HealthHandler.Jobs] completed", map[string]string{
		"status":         status,
		"total_jobs":     strconv.Itoa(summary.TotalJobs),
		"unhealthy_jobs": strconv.Itoa(summary.UnhealthyJobs),
		"stalled_jobs":   strconv.Itoa(summary.StalledJobs),
	})

	switch status {
	case statusUnhealthy:
		c.JSON(http.StatusServiceUnavailable, response)
	case statusDegraded:
		c.JSON(http.StatusPartialContent, response)
	default:
		c.JSON(http.StatusOK, response)
	}
}

func criticalJobFailing(jobs map[string]monitoring.JobStatus) bool {
	for _, name := range criticalJobs {
		job, ok := jobs[name]
		if ok && job.Status == monitoring.JobStatusFailed && job.ConsecutiveFailures >= criticalFailureThreshold {
			return true
		}
	}
	return false
}
