package dto

import (
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// SubmitGenerationRequest is the body of POST /api/generations
type SubmitGenerationRequest struct {
	InputImageURL string `json:"inputImageUrl" binding:"required"`
	Gender        string `json:"gender" binding:"required"`
	Background    string `json:"background" binding:"required"`
	Product       string `json:"product"`
}

// SubmitGenerationResponse points the browser at the checkout page
type SubmitGenerationResponse struct {
	GenerationID uint64 `json:"generationId"`
	RedirectTo   string `json:"redirectTo"`
}

// GenerationResponse is one row of the dashboard list
type GenerationResponse struct {
	ID            uint64    `json:"id"`
	Status        string    `json:"status"`
	Gender        string    `json:"gender"`
	Background    string    `json:"background"`
	InputImageURL string    `json:"inputImageUrl"`
	ImageURL      *string   `json:"imageUrl"`
	RetryCount    int       `json:"retryCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GenerationListResponse wraps the user's generations
type GenerationListResponse struct {
	Generations []GenerationResponse `json:"generations"`
}

// GenerationStatusResponse is the polling payload
type GenerationStatusResponse struct {
	ID       uint64  `json:"id"`
	Status   string  `json:"status"`
	ImageURL *string `json:"imageUrl"`
}

// MarkFailedRequest is the body of POST /api/generation-status
type MarkFailedRequest struct {
	GenerationID uint64 `json:"generationId" binding:"required"`
	Reason       string `json:"reason"`
}

// MarkFailedResponse confirms a generation was failed
type MarkFailedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ActionResponse is the {error, success} result of a user action
type ActionResponse struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// ToOptions converts the request to generation options
func (r SubmitGenerationRequest) ToOptions() entity.GenerationOptions {
	return entity.GenerationOptions{
		Gender:        entity.Gender(r.Gender),
		Background:    entity.Background(r.Background),
		InputImageURL: r.InputImageURL,
	}
}

// NewGenerationResponse converts an entity to its list row
func NewGenerationResponse(g *entity.Generation) GenerationResponse {
	return GenerationResponse{
		ID:            g.ID,
		Status:        string(g.Status),
		Gender:        string(g.Options.Gender),
		Background:    string(g.Options.Background),
		InputImageURL: g.Options.InputImageURL,
		ImageURL:      g.ImageURL,
		RetryCount:    g.RetryCount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// NewGenerationStatusResponse converts a snapshot to the polling payload
func NewGenerationStatusResponse(s *entity.GenerationSnapshot) GenerationStatusResponse {
	return GenerationStatusResponse{
		ID:       s.ID,
		Status:   string(s.Status),
		ImageURL: s.ImageURL,
	}
}
