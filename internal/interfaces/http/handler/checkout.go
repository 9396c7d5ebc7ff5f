package handler

import (
	applicationordering "github.com/towntreasure/backend/internal/application/ordering"
	"github.com/towntreasure/backend/internal/application/shopping"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the checkout flow endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *shopping.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *shopping.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/begin", h.Begin)
		checkout.POST("/confirm", h.Confirm)
		checkout.POST("/abort", h.Abort)
		checkout.GET("/state", h.State)
	}
}

// Begin opens the checkout review for the user's cart
func (h *CheckoutHandler) Begin(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.checkoutService.Begin(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm places the reviewed order
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shopping.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.checkoutService.Confirm(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, applicationordering.ToOrderResponse(order))
}

// Abort closes an open checkout review
func (h *CheckoutHandler) Abort(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.checkoutService.Abort(userID)
	h.NoContent(c)
}

// State returns the user's current checkout state
func (h *CheckoutHandler) State(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, gin.H{"state": h.checkoutService.State(userID)})
}
