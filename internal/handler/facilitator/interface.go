package facilitator

import "github.com/gin-gonic/gin"

type IHandler interface {
	Initialize(c *gin.Context)
	Config(c *gin.Context)
}
