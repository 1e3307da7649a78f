package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tpv_pos/internal/config"
	"tpv_pos/internal/till"
)

// InitRoutes wires the till core and registers every operator-facing
// endpoint on the given Gin engine. It builds the catalog and the snapshot
// storage from configuration, restores the session, and binds each HTTP
// method and path to the appropriate handler function.
func InitRoutes(e *gin.Engine, cfg *config.Config) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalog := till.NewCatalog(cfg.Catalog.Products())
	storage := till.NewFileStorage(cfg.Storage.DataFile, logger)
	tillService := till.NewService(catalog, storage, till.NewIDSource(), logger)
	tillHandler := NewTillHandler(tillService, logger)

	e.GET("/catalog", tillHandler.handleGetCatalog)

	e.GET("/cart", tillHandler.handleGetCart)
	e.POST("/cart/items", tillHandler.handleAddToCart)
	e.POST("/cart/items/:id/decrement", tillHandler.handleDecrementInCart)
	e.DELETE("/cart/items/:id", tillHandler.handleRemoveFromCart)
	e.DELETE("/cart", tillHandler.handleClearCart)

	e.POST("/checkout", tillHandler.handleCheckout)

	e.GET("/keypad", tillHandler.handleGetKeypad)
	e.POST("/keypad/keys", tillHandler.handlePressKey)
	e.POST("/keypad/preset", tillHandler.handleKeypadPreset)
	e.POST("/keypad/backspace", tillHandler.handleKeypadBackspace)
	e.POST("/keypad/confirm", tillHandler.handleConfirmPayment)
	e.DELETE("/keypad", tillHandler.handleKeypadClear)

	e.POST("/debts", tillHandler.handleDeferDebt)
	e.POST("/debts/:id/settle", tillHandler.handleSettleDebt)
	e.DELETE("/debts/:id", tillHandler.handleDiscardDebt)

	e.GET("/history", tillHandler.handleGetHistory)
	e.DELETE("/history", tillHandler.handleClearHistory)

	e.GET("/display-mode", tillHandler.handleGetDisplayMode)
	e.PUT("/display-mode", tillHandler.handleSetDisplayMode)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
