package gateway

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// StatusClient is the polling client's view of the generation status API
type StatusClient interface {
	// Status queries the current state of a generation
	//
	// Possible errors:
	// - ErrConnection: If the API could not be reached or answered with a server error
	// - ErrGenerationNotFound: If the generation does not exist
	Status(ctx context.Context, generationID uint64) (*entity.GenerationSnapshot, error)

	// MarkFailed asks the API to fail a generation that is still processing
	MarkFailed(ctx context.Context, generationID uint64, reason string) error
}
