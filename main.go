package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"tpv_pos/api"
	"tpv_pos/internal/config"
)

func main() {
	cfg := config.Load()

	r := gin.Default()
	api.InitRoutes(r, cfg)

	if err := r.Run(":" + cfg.App.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
