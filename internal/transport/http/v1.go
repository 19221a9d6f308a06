package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/swappy/internal/handler"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler) {
	v1 := r.Group("/api/v1")

	facilitator := v1.Group("/facilitator")
	{
		facilitator.POST("/initialize", h.FacilitatorHandler.Initialize)
		facilitator.GET("/config", h.FacilitatorHandler.Config)
	}

	swap := v1.Group("/swap")
	{
		swap.POST("", h.SwapHandler.Swap)
		swap.GET("/quote", h.SwapHandler.Quote)
		swap.GET("/executions", h.SwapHandler.Executions)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:address/balances", h.AccountHandler.Balances)
	}

	health := v1.Group("/health")
	{
		health.GET("/db", h.HealthHandler.Database)
		health.GET("/external", h.HealthHandler.External)
		health.GET("/jobs", h.HealthHandler.Jobs)
	}

	r.GET("/healthz", h.HealthHandler.Basic)
}
