package usecase

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// ActionResult is the {error, success} shape returned by user actions.
// Exactly one of Error and Success is non-empty.
type ActionResult struct {
	Error   string
	Success string
	Err     error
}

// OK reports whether the action succeeded
func (r ActionResult) OK() bool {
	return r.Error == ""
}

// GenerationUseCase defines the generation operations exposed over HTTP
type GenerationUseCase interface {
	// List returns the user's generations, newest first
	List(ctx context.Context, userID uint64) ([]*entity.Generation, error)

	// Status returns the externally visible state of a generation
	Status(ctx context.Context, generationID uint64) (*entity.GenerationSnapshot, error)

	// MarkFailed moves an owned PROCESSING generation to FAILED
	MarkFailed(ctx context.Context, userID, generationID uint64, reason string) error

	// Retry re-enters a FAILED generation into PROCESSING under guard conditions
	Retry(ctx context.Context, userID, generationID uint64) ActionResult
}
