package usecase

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// WebhookOutcome describes what a verified webhook delivery did
type WebhookOutcome string

// Webhook outcomes
const (
	OutcomeIgnored   WebhookOutcome = "ignored"   // event type not handled
	OutcomeMalformed WebhookOutcome = "malformed" // dropped after logging
	OutcomePending   WebhookOutcome = "pending"   // order recorded without payment
	OutcomeReplay    WebhookOutcome = "replay"    // order already paid
	OutcomeTriggered WebhookOutcome = "triggered" // generation dispatched
	OutcomeSkipped   WebhookOutcome = "skipped"   // paid, but generation was not awaiting payment
	OutcomeFailed    WebhookOutcome = "failed"    // store error, absorbed
)

// WebhookResult is returned for every delivery that passed signature checks
type WebhookResult struct {
	Received bool
	Outcome  WebhookOutcome
	EventID  string
}

// RedirectResult tells the HTTP layer where to send the browser
type RedirectResult struct {
	Location string
	Reason   string
}

// SubmitRequest carries a new generation and the product to pay for
type SubmitRequest struct {
	Options entity.GenerationOptions
	Product string
}

// SubmitResult identifies the new generation and its checkout page
type SubmitResult struct {
	GenerationID uint64
	RedirectTo   string
}

// FulfillmentUseCase ties payments to generations
type FulfillmentUseCase interface {
	// Submit creates a generation awaiting payment and opens a checkout session for it
	Submit(ctx context.Context, userID uint64, req SubmitRequest) (*SubmitResult, error)

	// HandleWebhook verifies and applies a payment event.
	// Only ErrAuthentication is returned; every other failure is absorbed.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)

	// CompleteCheckout handles the browser returning from checkout
	CompleteCheckout(ctx context.Context, sessionID string) RedirectResult
}
