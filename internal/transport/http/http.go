package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/handler"
	"github.com/dwarvesf/swappy/internal/handler/health"
	"github.com/dwarvesf/swappy/internal/handler/swap"
	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

// Deps are the collaborators the HTTP server routes to.
type Deps struct {
	Controller       controller.IController
	DB               *gorm.DB
	Chain            health.ChainProbe
	Registry         *prometheus.Registry
	HTTPMetrics      *monitoring.HTTPMetrics
	JobStatusManager *monitoring.JobStatusManager
}

func setupCORS(r *gin.Engine, cfg *config.AppConfig) {
	corsOrigins := strings.Split(cfg.ApiServer.AllowedOrigins, ";")
	r.Use(cors.New(
		cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS", "HEAD"},
			AllowHeaders: []string{
				"Origin", "Host", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Accept",
				"X-Requested-With", swap.IdempotencyHeader,
			},
			AllowCredentials: true,
		},
	))
}

func NewHttpServer(appConfig *config.AppConfig, logger *logger.Logger, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		gin.Recovery(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(monitoring.HTTPMetricsMiddleware(deps.HTTPMetrics))
	}
	if appConfig.ApiServer.AllowedOrigins != "" {
		setupCORS(r, appConfig)
	}

	h := handler.New(appConfig, logger,
		deps.Controller,
		deps.DB,
		deps.Chain,
		deps.Registry,
		monitoring.NewBusinessMetricsRecorder(deps.HTTPMetrics),
		deps.JobStatusManager,
	)

	// use ginSwagger middleware to serve the API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", h.MetricsHandler.Handler())

	// load api
	loadV1Routes(r, h)

	return r
}
