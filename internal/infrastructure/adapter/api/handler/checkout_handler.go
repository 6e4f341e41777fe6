package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// CheckoutHandler handles the browser returning from the hosted checkout
type CheckoutHandler struct {
	fulfillment usecase.FulfillmentUseCase
}

// NewCheckoutHandler creates a new checkout handler instance
func NewCheckoutHandler(fulfillment usecase.FulfillmentUseCase) *CheckoutHandler {
	return &CheckoutHandler{fulfillment: fulfillment}
}

// Complete handles GET /api/stripe/checkout?session_id=
func (h *CheckoutHandler) Complete(c *gin.Context) {
	result := h.fulfillment.CompleteCheckout(c.Request.Context(), c.Query("session_id"))
	c.Redirect(http.StatusTemporaryRedirect, result.Location)
}
