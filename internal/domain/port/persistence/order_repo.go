package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// OrderRepository defines the operations on order records keyed by payment intent
type OrderRepository interface {
	// Create saves a new order
	//
	// Possible errors:
	// - ErrDuplicateOrder: If an order for the payment intent already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, order *entity.Order) error

	// GetByPaymentIntentID retrieves the order for a payment intent
	//
	// Possible errors:
	// - ErrOrderNotFound: If no order exists for the intent
	// - ErrDatabaseConnection: If database connection fails
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error)

	// MarkPaid sets the amount and paid status of an order that is not yet paid.
	// Returns false when the order was already paid.
	MarkPaid(ctx context.Context, paymentIntentID string, amountPaid int64, paidAt time.Time) (bool, error)

	// HasPaidOrder reports whether any paid order references the generation
	HasPaidOrder(ctx context.Context, generationID uint64) (bool, error)
}
