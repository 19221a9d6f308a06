package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/handler/account"
	"github.com/dwarvesf/swappy/internal/handler/facilitator"
	"github.com/dwarvesf/swappy/internal/handler/health"
	"github.com/dwarvesf/swappy/internal/handler/metrics"
	"github.com/dwarvesf/swappy/internal/handler/swap"
	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

type Handler struct {
	FacilitatorHandler facilitator.IHandler
	SwapHandler        swap.IHandler
	AccountHandler     account.IHandler
	HealthHandler      health.IHealthHandler
	MetricsHandler     *metrics.MetricsHandler
}

func New(appConfig *config.AppConfig, logger *logger.Logger,
	ctrl controller.IController,
	db *gorm.DB,
	chain health.ChainProbe,
	metricsRegistry *prometheus.Registry,
	recorder *monitoring.BusinessMetricsRecorder,
	jobStatusManager *monitoring.JobStatusManager) *Handler {
	return &Handler{
		FacilitatorHandler: facilitator.New(ctrl, logger, recorder),
		SwapHandler:        swap.New(ctrl, logger, recorder),
		AccountHandler:     account.New(ctrl, logger, recorder),
		HealthHandler:      health.New(appConfig, logger, db, chain, jobStatusManager),
		MetricsHandler:     metrics.NewMetricsHandler(metricsRegistry),
	}
}
