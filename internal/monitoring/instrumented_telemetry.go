package monitoring

import (
	"context"
	"time"

	"github.com/dwarvesf/swappy/internal/telemetry"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
	"github.com/dwarvesf/swappy/internal/utils/webhook"
)

const (
	SwapExecutionIndexingJob = "swap_execution_indexing"

	swapExecutionIndexingTimeout = 10 * time.Minute
)

// InstrumentedTelemetry wraps the base telemetry with job monitoring and the
// uptime heartbeat
type InstrumentedTelemetry struct {
	indexSwapExecutions *InstrumentedJob
}

var _ telemetry.ITelemetry = (*InstrumentedTelemetry)(nil)

func NewInstrumentedTelemetry(
	baseTelemetry telemetry.ITelemetry,
	statusManager *JobStatusManager,
	logger *logger.Logger,
	config *config.AppConfig,
) *InstrumentedTelemetry {
	return &InstrumentedTelemetry{
		indexSwapExecutions: NewInstrumentedJobWithWebhook(
			SwapExecutionIndexingJob,
			baseTelemetry.IndexSwapExecutions,
			statusManager,
			logger,
			swapExecutionIndexingTimeout,
			webhook.New(logger),
			config.Uptime.HeartbeatURL,
		),
	}
}

// IndexSwapExecutions runs the indexer under its own deadline; ctx is unused
// because scheduled runs are not tied to a caller.
func (it *InstrumentedTelemetry) IndexSwapExecutions(_ context.Context) error {
	return it.indexSwapExecutions.Execute()
}
