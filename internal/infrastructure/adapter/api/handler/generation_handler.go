package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/generation"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/middleware"
)

// GenerationHandler handles generation-related HTTP requests
type GenerationHandler struct {
	generations usecase.GenerationUseCase
	fulfillment usecase.FulfillmentUseCase
	logger      coreport.Logger
}

// NewGenerationHandler creates a new generation handler instance
func NewGenerationHandler(
	generations usecase.GenerationUseCase,
	fulfillment usecase.FulfillmentUseCase,
	logger coreport.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generations: generations,
		fulfillment: fulfillment,
		logger:      logger,
	}
}

// Submit handles POST /api/generations
func (h *GenerationHandler) Submit(c *gin.Context) {
	var req dto.SubmitGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errs.ErrInvalidRequest, "Invalid request format: "+err.Error()))
		return
	}

	result, err := h.fulfillment.Submit(c.Request.Context(), middleware.UserID(c), usecase.SubmitRequest{
		Options: req.ToOptions(),
		Product: req.Product,
	})
	if err != nil {
		respondError(c, h.logger, "submit generation", err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitGenerationResponse{
		GenerationID: result.GenerationID,
		RedirectTo:   result.RedirectTo,
	})
}

// List handles GET /api/generations
func (h *GenerationHandler) List(c *gin.Context) {
	generations, err := h.generations.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, "list generations", err)
		return
	}

	resp := dto.GenerationListResponse{Generations: make([]dto.GenerationResponse, 0, len(generations))}
	for _, g := range generations {
		resp.Generations = append(resp.Generations, dto.NewGenerationResponse(g))
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /api/generation-status?generationId=
func (h *GenerationHandler) Status(c *gin.Context) {
	generationID, err := generation.ParseGenerationID(c.Query("generationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, "Invalid Generation ID format"))
		return
	}

	snapshot, err := h.generations.Status(c.Request.Context(), generationID)
	if err != nil {
		respondError(c, h.logger, "generation status", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGenerationStatusResponse(snapshot))
}

// MarkFailed handles POST /api/generation-status
func (h *GenerationHandler) MarkFailed(c *gin.Context) {
	var req dto.MarkFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errs.ErrInvalidGenerationID, "Valid generation ID is required"))
		return
	}

	if err := h.generations.MarkFailed(c.Request.Context(), middleware.UserID(c), req.GenerationID, req.Reason); err != nil {
		respondError(c, h.logger, "mark generation failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkFailedResponse{
		Success: true,
		Message: "Generation marked as failed",
	})
}

// Retry handles POST /api/generations/retry with a form-encoded generationId.
// Rejections are action results, not HTTP errors.
func (h *GenerationHandler) Retry(c *gin.Context) {
	generationID, err := generation.ParseGenerationID(c.PostForm("generationId"))
	if err != nil {
		c.JSON(http.StatusOK, dto.ActionResponse{Error: "Invalid generation ID"})
		return
	}

	result := h.generations.Retry(c.Request.Context(), middleware.UserID(c), generationID)
	if !result.OK() {
		if result.Err != nil {
			_ = c.Error(result.Err)
		}
		c.JSON(http.StatusOK, dto.ActionResponse{Error: result.Error})
		return
	}

	c.JSON(http.StatusOK, dto.ActionResponse{Success: result.Success})
}
