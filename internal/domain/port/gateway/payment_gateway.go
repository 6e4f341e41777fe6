package gateway

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// PaymentGateway abstracts the payment provider
type PaymentGateway interface {
	// VerifyEvent checks the signature of a webhook payload and decodes it
	//
	// Possible errors:
	// - ErrAuthentication: If the signature does not match the payload
	VerifyEvent(payload []byte, signature string) (*entity.PaymentEvent, error)

	// ResolvePrice maps a product lookup key to the provider's price ID
	ResolvePrice(ctx context.Context, lookupKey string) (string, error)

	// CreateCheckoutSession opens a hosted checkout and returns its URL
	CreateCheckoutSession(ctx context.Context, req entity.CheckoutRequest) (string, error)

	// GetCheckoutSession retrieves a session with its customer expanded
	GetCheckoutSession(ctx context.Context, sessionID string) (*entity.CheckoutSession, error)
}
