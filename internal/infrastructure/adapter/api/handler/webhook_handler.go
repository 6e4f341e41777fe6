package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
)

// MaxWebhookBodyBytes bounds the size of a webhook payload
const MaxWebhookBodyBytes = 64 << 10

// SignatureHeader carries the webhook signature
const SignatureHeader = "Stripe-Signature"

// WebhookHandler receives payment provider events
type WebhookHandler struct {
	fulfillment usecase.FulfillmentUseCase
	logger      coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(fulfillment usecase.FulfillmentUseCase, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		fulfillment: fulfillment,
		logger:      logger,
	}
}

// Receive handles POST /api/stripe/webhook. The signature is computed over
// the raw body, so it must be read before any JSON binding.
func (h *WebhookHandler) Receive(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errs.ErrInvalidRequest, "Unable to read webhook payload"))
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errs.ErrAuthentication, "Missing webhook signature"))
		return
	}

	result, err := h.fulfillment.HandleWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		h.logger.Warn("Webhook signature verification failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, "Webhook signature verification failed."))
		return
	}

	h.logger.Debug("Webhook processed", map[string]any{
		"event_id": result.EventID,
		"outcome":  string(result.Outcome),
	})
	c.JSON(http.StatusOK, dto.WebhookResponse{Received: result.Received})
}
