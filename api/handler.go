package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tpv_pos/internal/till"
)

// tillHandler holds the till service and implements HTTP handlers for the
// operator-facing operations.
type tillHandler struct {
	tillService *till.Service
	logger      *zap.Logger
}

// NewTillHandler creates a new till handler.
func NewTillHandler(tillService *till.Service, logger *zap.Logger) *tillHandler {
	return &tillHandler{
		tillService: tillService,
		logger:      logger,
	}
}

// handleGetCatalog handles GET /catalog.
func (h *tillHandler) handleGetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"products": h.tillService.Catalog().Products()})
}

// handleGetCart handles GET /cart.
func (h *tillHandler) handleGetCart(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"lines": h.tillService.CartLines(),
		"total": h.tillService.CartTotal(),
	})
}

// handleAddToCart handles POST /cart/items.
func (h *tillHandler) handleAddToCart(ctx *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.tillService.AddToCart(req.ProductID); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
		return
	}

	h.handleGetCart(ctx)
}

// handleDecrementInCart handles POST /cart/items/:id/decrement.
func (h *tillHandler) handleDecrementInCart(ctx *gin.Context) {
	h.tillService.DecrementInCart(ctx.Param("id"))
	h.handleGetCart(ctx)
}

// handleRemoveFromCart handles DELETE /cart/items/:id.
func (h *tillHandler) handleRemoveFromCart(ctx *gin.Context) {
	h.tillService.RemoveFromCart(ctx.Param("id"))
	h.handleGetCart(ctx)
}

// handleClearCart handles DELETE /cart.
func (h *tillHandler) handleClearCart(ctx *gin.Context) {
	h.tillService.ClearCart()
	h.handleGetCart(ctx)
}

// handleCheckout handles POST /checkout. The tendered amount accepts either
// a JSON number or a string like "10.50".
func (h *tillHandler) handleCheckout(ctx *gin.Context) {
	var req struct {
		Tendered decimal.Decimal `json:"tendered"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.tillService.Checkout(req.Tendered)
	if err != nil {
		switch err {
		case till.ErrInvalidTender:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "tendered amount below cart total"})
		default:
			h.logger.Error("failed to checkout", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to checkout"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleGetKeypad handles GET /keypad.
func (h *tillHandler) handleGetKeypad(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.tillService.Keypad())
}

// handlePressKey handles POST /keypad/keys.
func (h *tillHandler) handlePressKey(ctx *gin.Context) {
	var req struct {
		Key string `json:"key"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	ctx.JSON(http.StatusOK, h.tillService.PressKey(req.Key))
}

// handleKeypadPreset handles POST /keypad/preset.
func (h *tillHandler) handleKeypadPreset(ctx *gin.Context) {
	var req struct {
		Amount string `json:"amount"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	ctx.JSON(http.StatusOK, h.tillService.SetKeypadPreset(req.Amount))
}

// handleKeypadBackspace handles POST /keypad/backspace.
func (h *tillHandler) handleKeypadBackspace(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.tillService.KeypadBackspace())
}

// handleKeypadClear handles DELETE /keypad.
func (h *tillHandler) handleKeypadClear(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.tillService.KeypadClear())
}

// handleConfirmPayment handles POST /keypad/confirm: checkout against the
// keypad buffer instead of an explicit amount.
func (h *tillHandler) handleConfirmPayment(ctx *gin.Context) {
	sale, err := h.tillService.ConfirmPayment()
	if err != nil {
		switch err {
		case till.ErrInvalidTender:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "tendered amount below cart total"})
		default:
			h.logger.Error("failed to confirm payment", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm payment"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleDeferDebt handles POST /debts.
func (h *tillHandler) handleDeferDebt(ctx *gin.Context) {
	var req struct {
		CustomerName string `json:"customer_name"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	debt, err := h.tillService.DeferDebt(req.CustomerName)
	if err != nil {
		switch err {
		case till.ErrInvalidDebt:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "empty cart or blank customer name"})
		default:
			h.logger.Error("failed to open debt", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open debt"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, debt)
}

// handleSettleDebt handles POST /debts/:id/settle.
func (h *tillHandler) handleSettleDebt(ctx *gin.Context) {
	sale, err := h.tillService.SettleDebt(ctx.Param("id"))
	if err != nil {
		switch err {
		case till.ErrNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": "debt not found"})
		default:
			h.logger.Error("failed to settle debt", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle debt"})
		}
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// handleDiscardDebt handles DELETE /debts/:id. Discarding is idempotent.
func (h *tillHandler) handleDiscardDebt(ctx *gin.Context) {
	h.tillService.DiscardDebt(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

// handleGetHistory handles GET /history.
func (h *tillHandler) handleGetHistory(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"sales":             h.tillService.Sales(),
		"debts":             h.tillService.Debts(),
		"total_collected":   h.tillService.TotalCollected(),
		"total_outstanding": h.tillService.TotalOutstanding(),
	})
}

// handleClearHistory handles DELETE /history.
func (h *tillHandler) handleClearHistory(ctx *gin.Context) {
	h.tillService.ClearHistory()
	ctx.Status(http.StatusNoContent)
}

// handleGetDisplayMode handles GET /display-mode.
func (h *tillHandler) handleGetDisplayMode(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"mode": h.tillService.DisplayMode()})
}

// handleSetDisplayMode handles PUT /display-mode.
func (h *tillHandler) handleSetDisplayMode(ctx *gin.Context) {
	var req struct {
		Mode string `json:"mode"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.tillService.SetDisplayMode(req.Mode); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid display mode"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"mode": h.tillService.DisplayMode()})
}
