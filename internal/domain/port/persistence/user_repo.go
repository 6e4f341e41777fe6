package persistence

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// UserRepository defines the user operations the fulfillment workflow needs
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// AttachCustomerID stores the payment provider customer id on the user
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	AttachCustomerID(ctx context.Context, userID uint64, customerID string) error
}
