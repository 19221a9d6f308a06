package main

import (
	"github.com/dwarvesf/swappy/internal/server"
)

// @title Swappy API
// @version 1.0
// @description Swaps native currency into ERC20 tokens through a single-pool router.
// @BasePath /api/v1
func main() {
	server.Init()
}
