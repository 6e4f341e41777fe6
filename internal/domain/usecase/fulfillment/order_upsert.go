package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// applyPayment upserts the order and, on a new paid transition, moves the
// generation from PENDING_PAYMENT to PROCESSING in the same transaction
func (s *Service) applyPayment(ctx context.Context, p *payment) (outcome usecase.WebhookOutcome, err error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return usecase.OutcomeFailed, err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back payment transaction", map[string]any{
				"payment_intent_id": p.PaymentIntentID,
				"error":             rbErr.Error(),
			})
		}
	}()

	orders := s.uow.GetOrderRepository(txCtx)
	paidNow, outcome, err := s.upsertOrder(txCtx, orders, p)
	if err != nil {
		return usecase.OutcomeFailed, err
	}

	if paidNow {
		started, err := s.uow.GetGenerationRepository(txCtx).StartProcessing(txCtx, p.GenerationID)
		if err != nil {
			return usecase.OutcomeFailed, err
		}
		outcome = usecase.OutcomeSkipped
		if started {
			outcome = usecase.OutcomeTriggered
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return usecase.OutcomeFailed, err
	}
	committed = true

	return outcome, nil
}

// upsertOrder records the payment against its intent. It reports true only
// when this call moved the order into paid.
func (s *Service) upsertOrder(ctx context.Context, orders persistence.OrderRepository, p *payment) (bool, usecase.WebhookOutcome, error) {
	existing, err := orders.GetByPaymentIntentID(ctx, p.PaymentIntentID)
	if err != nil && !errors.Is(err, errs.ErrOrderNotFound) {
		return false, usecase.OutcomeFailed, err
	}

	if existing == nil {
		order, err := entity.NewOrder(p.UserID, p.GenerationID, p.PaymentIntentID, p.AmountTotal, s.timeProvider)
		if err != nil {
			return false, usecase.OutcomeMalformed, err
		}

		err = orders.Create(ctx, order)
		switch {
		case err == nil:
			if order.IsPaid() {
				return true, usecase.OutcomeTriggered, nil
			}
			return false, usecase.OutcomePending, nil
		case !errors.Is(err, errs.ErrDuplicateOrder):
			return false, usecase.OutcomeFailed, err
		}

		// A concurrent delivery inserted the row first
		existing, err = orders.GetByPaymentIntentID(ctx, p.PaymentIntentID)
		if err != nil {
			return false, usecase.OutcomeFailed, err
		}
	}

	if existing.GenerationID != p.GenerationID || existing.UserID != p.UserID {
		return false, usecase.OutcomeMalformed, fmt.Errorf("%w: order %d belongs to generation %d",
			errs.ErrMalformedEvent, existing.ID, existing.GenerationID)
	}

	if existing.IsPaid() {
		return false, usecase.OutcomeReplay, nil
	}
	if !existing.NeedsPaidTransition(p.AmountTotal) {
		return false, usecase.OutcomePending, nil
	}

	updated, err := orders.MarkPaid(ctx, p.PaymentIntentID, p.AmountTotal, s.timeProvider.Now())
	if err != nil {
		return false, usecase.OutcomeFailed, err
	}
	if !updated {
		return false, usecase.OutcomeReplay, nil
	}
	return true, usecase.OutcomeTriggered, nil
}
