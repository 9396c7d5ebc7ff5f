package handler

import (
	"time"

	"github.com/towntreasure/backend/internal/infrastructure/fx"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FXHandler exposes the current USD to NPR display rate
type FXHandler struct {
	BaseHandler
	rates *fx.RateProvider
}

// NewFXHandler creates a new FXHandler
func NewFXHandler(rates *fx.RateProvider) *FXHandler {
	return &FXHandler{rates: rates}
}

// RegisterRoutes registers fx routes
func (h *FXHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/fx/rate", h.Rate)
}

// RateResponse carries the current exchange rate
type RateResponse struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt *time.Time      `json:"fetched_at,omitempty"`
}

// Rate returns the current USD to NPR rate. When the upstream API has
// never been reached the fallback rate is reported without a fetch time.
func (h *FXHandler) Rate(c *gin.Context) {
	resp := RateResponse{
		Base:  "USD",
		Quote: "NPR",
		Rate:  h.rates.Rate(),
	}
	if fetchedAt := h.rates.FetchedAt(); !fetchedAt.IsZero() {
		resp.FetchedAt = &fetchedAt
	}
	h.Success(c, resp)
}
