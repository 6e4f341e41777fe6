package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	tport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// GenerationStatus represents where a generation is in its lifecycle
type GenerationStatus string

// Generation statuses
const (
	StatusPendingPayment GenerationStatus = "PENDING_PAYMENT"
	StatusProcessing     GenerationStatus = "PROCESSING"
	StatusCompleted      GenerationStatus = "COMPLETED"
	StatusFailed         GenerationStatus = "FAILED"
)

// MaxRetries is the number of explicit retries a failed generation may use
const MaxRetries = 3

// Gender is the subject option passed to the headshot model
type Gender string

// Supported genders
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Background is the backdrop option passed to the headshot model
type Background string

// Supported backgrounds
const (
	BackgroundNeutral Background = "neutral"
	BackgroundOffice  Background = "office"
	BackgroundCity    Background = "city"
	BackgroundNature  Background = "nature"
)

// GenerationOptions are the user-chosen inputs of a generation
type GenerationOptions struct {
	Gender        Gender     `validate:"required,oneof=male female"`
	Background    Background `validate:"required,oneof=neutral office city nature"`
	InputImageURL string     `validate:"required,url,image_url"`
}

// Generation is one attempted headshot job tied to one input image and option set
type Generation struct {
	ID         uint64
	UserID     uint64
	Options    GenerationOptions
	ImageURL   *string // set only when Status is COMPLETED
	Status     GenerationStatus
	RetryCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GenerationSnapshot is the externally visible status of a generation
type GenerationSnapshot struct {
	ID       uint64           `json:"id"`
	Status   GenerationStatus `json:"status"`
	ImageURL *string          `json:"imageUrl"`
}

// NewGeneration creates a generation awaiting payment
func NewGeneration(userID uint64, options GenerationOptions, timeProvider tport.TimeProvider) (*Generation, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}

	now := timeProvider.Now()
	return &Generation{
		UserID:    userID,
		Options:   options,
		Status:    StatusPendingPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy reports whether userID owns the generation
func (g *Generation) IsOwnedBy(userID uint64) bool {
	return userID != 0 && g.UserID == userID
}

// CanRetry checks the state and limit preconditions of a retry.
// Ownership and payment are checked by the caller.
func (g *Generation) CanRetry() error {
	if g.Status != StatusFailed {
		return errs.ErrInvalidState
	}
	if g.RetryCount >= MaxRetries {
		return errs.ErrRetryLimit
	}
	return nil
}

// HasConsistentImage reports whether the imageUrl/status invariant holds
func (g *Generation) HasConsistentImage() bool {
	hasImage := g.ImageURL != nil && *g.ImageURL != ""
	return hasImage == (g.Status == StatusCompleted)
}

// Snapshot converts the generation to its status response
func (g *Generation) Snapshot() GenerationSnapshot {
	return GenerationSnapshot{
		ID:       g.ID,
		Status:   g.Status,
		ImageURL: g.ImageURL,
	}
}

// OutputKey is the deterministic storage key of the generated image
func (g *Generation) OutputKey() string {
	return OutputKeyFor(g.ID)
}

// IsTerminal reports whether the status ends a polling session
func (s GenerationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsValid reports whether s is a known status
func (s GenerationStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
