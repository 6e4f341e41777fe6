package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// Submit creates a generation in PENDING_PAYMENT and opens a checkout
// session that carries the generation id back through the webhook
func (s *Service) Submit(ctx context.Context, userID uint64, req usecase.SubmitRequest) (*usecase.SubmitResult, error) {
	if userID == 0 {
		return nil, errs.ErrAuthentication
	}
	if err := s.validator.Validate(req.Options); err != nil {
		return nil, err
	}

	lookupKey, ok := s.checkout.LookupKey(req.Product)
	if !ok {
		return nil, fmt.Errorf("%w: unknown product %q", errs.ErrInvalidRequest, req.Product)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	gen, err := entity.NewGeneration(userID, req.Options, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.generations.Create(ctx, gen); err != nil {
		s.logger.Error("Failed to save generation", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Generation created awaiting payment", map[string]any{
		"generation_id": gen.ID,
		"user_id":       userID,
	})

	priceID, err := s.payments.ResolvePrice(ctx, lookupKey)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve price %s: %v", errs.ErrExternalService, lookupKey, err)
	}

	base := strings.TrimRight(s.checkout.BaseURL, "/")
	redirectTo, err := s.payments.CreateCheckoutSession(ctx, entity.CheckoutRequest{
		UserID:       userID,
		GenerationID: gen.ID,
		PriceID:      priceID,
		CustomerID:   user.CustomerID(),
		SuccessURL:   base + "/api/stripe/checkout?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:    base + "/pricing",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", errs.ErrExternalService, err)
	}

	return &usecase.SubmitResult{
		GenerationID: gen.ID,
		RedirectTo:   redirectTo,
	}, nil
}
