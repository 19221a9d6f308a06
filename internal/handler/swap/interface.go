package swap

import "github.com/gin-gonic/gin"

type IHandler interface {
	Swap(c *gin.Context)
	Quote(c *gin.Context)
	Executions(c *gin.Context)
}
