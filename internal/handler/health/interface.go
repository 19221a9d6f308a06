package health

import (
	"context"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Basic(c *gin.Context)
	Database(c *gin.Context)
	External(c *gin.Context)
	Jobs(c *gin.Context)
}

// ChainProbe reports the head block of the execution environment the
// facilitator runs on.
type ChainProbe interface {
	HealthCheck(ctx context.Context) (uint64, error)
}

// ProbeFunc adapts a function to ChainProbe.
type ProbeFunc func(ctx context.Context) (uint64, error)

func (f ProbeFunc) HealthCheck(ctx context.Context) (uint64, error) {
	return f(ctx)
}
