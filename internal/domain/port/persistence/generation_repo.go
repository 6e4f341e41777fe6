package persistence

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// GenerationRepository defines the operations on generation records.
// Every status change is a conditional update; the bool result reports
// whether this caller's update affected the row.
type GenerationRepository interface {
	// Create saves a new generation and assigns its ID
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, generation *entity.Generation) error

	// GetByID retrieves a generation by ID
	//
	// Possible errors:
	// - ErrGenerationNotFound: If no generation has this ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Generation, error)

	// ListByUser returns the user's generations, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Generation, error)

	// StartProcessing moves PENDING_PAYMENT to PROCESSING
	StartProcessing(ctx context.Context, id uint64) (bool, error)

	// BeginRetry moves FAILED to PROCESSING and increments the retry counter,
	// only while the counter is below maxRetries
	BeginRetry(ctx context.Context, id uint64, maxRetries int) (bool, error)

	// MarkCompleted stores the output URL and moves PROCESSING or FAILED to COMPLETED
	MarkCompleted(ctx context.Context, id uint64, imageURL string) (bool, error)

	// MarkFailed moves PROCESSING to FAILED and clears the output URL
	MarkFailed(ctx context.Context, id uint64) (bool, error)
}
