package account

import "github.com/gin-gonic/gin"

type IHandler interface {
	Balances(c *gin.Context)
}
