package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

const (
	databaseTimeout = 5 * time.Second
	chainTimeout    = 3 * time.Second
)

type HealthHandler struct {
	config           *config.AppConfig
	logger           *logger.Logger
	db               *gorm.DB
	chain            ChainProbe
	jobStatusManager *monitoring.JobStatusManager
}

// New builds the health handler. jobStatusManager is nil when no background
// jobs run, as in simulated mode.
func New(config *config.AppConfig, logger *logger.Logger, db *gorm.DB, chain ChainProbe, jobStatusManager *monitoring.JobStatusManager) IHealthHandler {
	return &HealthHandler{
		config:           config,
		logger:           logger,
		db:               db,
		chain:            chain,
		jobStatusManager: jobStatusManager,
	}
}

// Basic godoc
// @Summary Basic health check
// @Description Returns basic system availability status
// @Tags Health
// @Produce json
// @Success 200 {object} BasicHealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Basic(c *gin.Context) {
	c.JSON(http.StatusOK, BasicHealthResponse{Message: "ok"})
}

// Database godoc
// @Summary Database health check
// @Description Pings the database and reports connection pool usage
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/db [get]
func (h *HealthHandler) Database(c *gin.Context) {
	h.respond(c, "database", h.checkDatabase)
}

// External godoc
// @Summary Execution environment health check
// @Description Reads the head block of the simulated chain or of the EVM node behind the circuit breaker
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/external [get]
func (h *HealthHandler) External(c *gin.Context) {
	h.respond(c, h.chainCheckName(), h.checkChain)
}

func (h *HealthHandler) respond(c *gin.Context, name string, check func(ctx context.Context) HealthCheck) {
	start := time.Now()
	result := check(c.Request.Context())

	response := HealthResponse{
		Status:     result.Status,
		Timestamp:  start,
		Checks:     map[string]HealthCheck{name: result},
		DurationMs: time.Since(start).Milliseconds(),
	}
	if result.Status != statusHealthy {
		h.logger.Error("[HealthHandler] check failed", map[string]string{
			"check": name,
			"error": result.Error,
		})
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) chainCheckName() string {
	if h.config != nil && h.config.Facilitator.Mode == config.ModeOnchain {
		return "evm_rpc"
	}
	return "simulated_chain"
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	start := time.Now()
	if h.db == nil {
		return unhealthy(start, "database connection not available")
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return unhealthy(start, "failed to get underlying database: "+err.Error())
	}

	pingCtx, cancel := context.WithTimeout(ctx, databaseTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		if pingCtx.Err() == context.DeadlineExceeded {
			return unhealthy(start, "timeout")
		}
		return unhealthy(start, err.Error())
	}

	stats := sqlDB.Stats()
	return HealthCheck{
		Status:  statusHealthy,
		Latency: time.Since(start).Milliseconds(),
		Metadata: map[string]interface{}{
			"dialect": h.db.Dialector.Name(),
			"connection_pool": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"max_open":         stats.MaxOpenConnections,
			},
		},
	}
}

func (h *HealthHandler) checkChain(ctx context.Context) HealthCheck {
	start := time.Now()
	if h.chain == nil {
		return unhealthy(start, "chain probe not available")
	}

	checkCtx, cancel := context.WithTimeout(ctx, chainTimeout)
	defer cancel()

	type result struct {
		block uint64
		err   error
	}
	done := make(chan result, 1)
	go func() {
		block, err := h.chain.HealthCheck(checkCtx)
		done <- result{block: block, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return unhealthy(start, r.err.Error())
		}
		return HealthCheck{
			Status:   statusHealthy,
			Latency:  time.Since(start).Milliseconds(),
			Metadata: map[string]interface{}{"block_number": r.block},
		}
	case <-checkCtx.Done():
		if checkCtx.Err() == context.DeadlineExceeded {
			return unhealthy(start, "timeout")
		}
		return unhealthy(start, checkCtx.Err().Error())
	}
}

func unhealthy(start time.Time, reason string) HealthCheck {
	return HealthCheck{
		Status:  statusUnhealthy,
		Latency: time.Since(start).Milliseconds(),
		Error:   reason,
	}
}
