package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
)

// Config holds the Stripe credentials
type Config struct {
	SecretKey         string `mapstructure:"secret_key"`
	WebhookSecret     string `mapstructure:"webhook_secret"`
	MaxNetworkRetries int64  `mapstructure:"max_network_retries"`
}

// StripeGateway implements gateway.PaymentGateway with the Stripe API
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	logger        coreport.Logger
}

var _ gateway.PaymentGateway = (*StripeGateway)(nil)

// Option customizes the Stripe backend
type Option func(*stripe.BackendConfig)

// WithHTTPClient routes API calls through httpClient
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *stripe.BackendConfig) {
		c.HTTPClient = httpClient
	}
}

// NewStripeGateway creates a gateway bound to the configured account
func NewStripeGateway(cfg Config, logger coreport.Logger, opts ...Option) *StripeGateway {
	log := logger.With(map[string]any{"component": "stripe"})

	backendConfig := &stripe.BackendConfig{
		LeveledLogger:     &leveledLogger{logger: log},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
	}
	for _, opt := range opts {
		opt(backendConfig)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	}

	return &StripeGateway{
		api:           client.New(cfg.SecretKey, backends),
		webhookSecret: cfg.WebhookSecret,
		logger:        log,
	}
}

// VerifyEvent checks the Stripe-Signature header and decodes the event.
// A signed event whose session cannot be decoded is returned without a session.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*entity.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrAuthentication, err.Error())
	}

	result := &entity.PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted || event.Data == nil {
		return result, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		g.logger.Warn("Failed to decode checkout session", map[string]any{
			"event_id": event.ID,
			"error":    err.Error(),
		})
		return result, nil
	}
	result.Session = toCheckoutSession(&session)
	return result, nil
}

// ResolvePrice maps a product lookup key to the active price ID
func (g *StripeGateway) ResolvePrice(ctx context.Context, lookupKey string) (string, error) {
	params := &stripe.PriceListParams{
		Active:     stripe.Bool(true),
		LookupKeys: stripe.StringSlice([]string{lookupKey}),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := g.api.Prices.List(params)
	for iter.Next() {
		return iter.Price().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list prices for %q: %w", lookupKey, err)
	}
	return "", fmt.Errorf("no active price for lookup key %q", lookupKey)
}

// CreateCheckoutSession opens a hosted checkout for one generation
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req entity.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:                stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:          stripe.String(req.SuccessURL),
		CancelURL:           stripe.String(req.CancelURL),
		ClientReferenceID:   stripe.String(strconv.FormatUint(req.UserID, 10)),
		AllowPromotionCodes: stripe.Bool(true),
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}
	params.AddMetadata("generationId", strconv.FormatUint(req.GenerationID, 10))
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout session %s has no URL", session.ID)
	}

	g.logger.Info("Checkout session created", map[string]any{
		"session_id":    session.ID,
		"generation_id": req.GenerationID,
		"user_id":       req.UserID,
	})
	return session.URL, nil
}

// GetCheckoutSession retrieves a session with its customer expanded
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*entity.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("customer")
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}
	return toCheckoutSession(session), nil
}

func toCheckoutSession(session *stripe.CheckoutSession) *entity.CheckoutSession {
	result := &entity.CheckoutSession{
		ID:                session.ID,
		AmountTotal:       session.AmountTotal,
		ClientReferenceID: session.ClientReferenceID,
		GenerationID:      session.Metadata["generationId"],
		PaymentStatus:     string(session.PaymentStatus),
	}
	if session.PaymentIntent != nil {
		result.PaymentIntentID = session.PaymentIntent.ID
	}
	if session.Customer != nil {
		result.CustomerID = session.Customer.ID
	}
	return result
}
