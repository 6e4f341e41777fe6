package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// payment holds the fields a completed checkout must carry
type payment struct {
	PaymentIntentID string
	AmountTotal     int64
	UserID          uint64
	GenerationID    uint64
}

// HandleWebhook verifies a payment event and applies it. After the signature
// check passes the delivery is always acknowledged; failures are logged and
// left to the generation status and retry path.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*usecase.WebhookResult, error) {
	event, err := s.payments.VerifyEvent(payload, signature)
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", map[string]any{
			"error": err.Error(),
		})
		if !errors.Is(err, errs.ErrAuthentication) {
			err = fmt.Errorf("%w: %v", errs.ErrAuthentication, err)
		}
		return nil, err
	}

	result := &usecase.WebhookResult{Received: true, EventID: event.ID}
	log := s.logger.With(map[string]any{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	if event.Type != entity.EventCheckoutSessionCompleted {
		log.Debug("Ignoring unhandled event type", nil)
		result.Outcome = usecase.OutcomeIgnored
		return result, nil
	}

	p, err := extractPayment(event)
	if err != nil {
		logDropped(log, err)
		result.Outcome = usecase.OutcomeMalformed
		return result, nil
	}
	log = log.With(map[string]any{
		"payment_intent_id": p.PaymentIntentID,
		"generation_id":     p.GenerationID,
		"user_id":           p.UserID,
	})

	if err := s.checkOwnership(ctx, event, p); err != nil {
		if errors.Is(err, errs.ErrMalformedEvent) {
			logDropped(log, err)
			result.Outcome = usecase.OutcomeMalformed
		} else {
			log.Error("Failed to load generation for payment", map[string]any{"error": err.Error()})
			result.Outcome = usecase.OutcomeFailed
		}
		return result, nil
	}

	outcome, err := s.applyPayment(ctx, p)
	if err != nil {
		if errors.Is(err, errs.ErrMalformedEvent) {
			logDropped(log, err)
			result.Outcome = usecase.OutcomeMalformed
			return result, nil
		}
		log.Error("Failed to apply payment", map[string]any{"error": err.Error()})
		result.Outcome = usecase.OutcomeFailed
		return result, nil
	}
	result.Outcome = outcome

	if outcome == usecase.OutcomeTriggered {
		if !s.dispatcher.Dispatch(p.GenerationID) {
			log.Error("Generation could not be dispatched", nil)
			if _, err := s.generations.MarkFailed(context.WithoutCancel(ctx), p.GenerationID); err != nil {
				log.Error("Failed to fail undispatched generation", map[string]any{"error": err.Error()})
			}
			result.Outcome = usecase.OutcomeFailed
			return result, nil
		}
	}

	log.Info("Payment event applied", map[string]any{
		"outcome": string(result.Outcome),
		"amount":  p.AmountTotal,
	})
	return result, nil
}

func extractPayment(event *entity.PaymentEvent) (*payment, error) {
	session := event.Session
	if session == nil {
		return nil, errs.NewMalformedEventError(event.ID, event.Type, "missing checkout session")
	}
	if session.PaymentIntentID == "" {
		return nil, errs.NewMalformedEventError(event.ID, event.Type, "missing payment intent")
	}

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil || userID == 0 {
		return nil, errs.NewMalformedEventError(event.ID, event.Type, "missing or invalid client reference id")
	}

	generationID, err := strconv.ParseUint(session.GenerationID, 10, 64)
	if err != nil || generationID == 0 {
		return nil, errs.NewMalformedEventError(event.ID, event.Type, "missing or invalid generation id")
	}

	if session.AmountTotal < 0 {
		return nil, errs.NewMalformedEventError(event.ID, event.Type, "negative amount")
	}

	return &payment{
		PaymentIntentID: session.PaymentIntentID,
		AmountTotal:     session.AmountTotal,
		UserID:          userID,
		GenerationID:    generationID,
	}, nil
}

func (s *Service) checkOwnership(ctx context.Context, event *entity.PaymentEvent, p *payment) error {
	gen, err := s.generations.GetByID(ctx, p.GenerationID)
	if errors.Is(err, errs.ErrGenerationNotFound) {
		return errs.NewMalformedEventError(event.ID, event.Type, "generation does not exist")
	}
	if err != nil {
		return err
	}
	if !gen.IsOwnedBy(p.UserID) {
		return errs.NewMalformedEventError(event.ID, event.Type, "generation is not owned by the paying user")
	}
	return nil
}

func logDropped(log coreport.Logger, err error) {
	fields := map[string]any{"error": err.Error()}
	var webhookErr *errs.WebhookError
	if errors.As(err, &webhookErr) {
		fields = webhookErr.LogFields()
	}
	log.Warn("Dropping malformed payment event", fields)
}
