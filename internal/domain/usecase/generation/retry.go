package generation

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// Retry re-runs a failed generation for its owner. Checks run in a fixed
// order and none of them writes; only the final conditional update mutates.
func (s *Service) Retry(ctx context.Context, userID, generationID uint64) usecase.ActionResult {
	if err := s.retry(ctx, userID, generationID); err != nil {
		fields := map[string]any{
			"generation_id": generationID,
			"user_id":       userID,
			"error":         err.Error(),
		}
		if errs.IsRetryRejection(err) {
			s.logger.Info("Retry rejected", fields)
		} else {
			s.logger.Error("Retry failed", fields)
		}
		return usecase.ActionResult{Error: retryMessage(err), Err: err}
	}

	return usecase.ActionResult{Success: "Generation restarted"}
}

func (s *Service) retry(ctx context.Context, userID, generationID uint64) error {
	if userID == 0 {
		return errs.ErrAuthentication
	}
	if generationID == 0 {
		return errs.ErrInvalidGenerationID
	}

	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return err
	}
	if !gen.IsOwnedBy(userID) {
		return errs.ErrAuthorization
	}
	if err := gen.CanRetry(); err != nil {
		return err
	}

	paid, err := s.orders.HasPaidOrder(ctx, generationID)
	if err != nil {
		return err
	}
	if !paid {
		return errs.ErrPaymentRequired
	}

	ok, err := s.generations.BeginRetry(ctx, generationID, entity.MaxRetries)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrInvalidState
	}

	s.logger.Info("Generation retry started", map[string]any{
		"generation_id": generationID,
		"user_id":       userID,
		"retry_count":   gen.RetryCount + 1,
	})

	if !s.dispatcher.Dispatch(generationID) {
		// An undispatched generation must not stay PROCESSING
		if _, err := s.generations.MarkFailed(context.WithoutCancel(ctx), generationID); err != nil {
			s.logger.Error("Failed to fail undispatched generation", map[string]any{
				"generation_id": generationID,
				"error":         err.Error(),
			})
		}
		return errs.ErrInternalServer
	}
	return nil
}

func retryMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrAuthentication):
		return "User is not authenticated"
	case errors.Is(err, errs.ErrInvalidGenerationID):
		return "Invalid generation ID"
	case errors.Is(err, errs.ErrGenerationNotFound):
		return "Generation not found"
	case errors.Is(err, errs.ErrAuthorization):
		return "You are not allowed to retry this generation"
	case errors.Is(err, errs.ErrInvalidState):
		return "Only failed generations can be retried"
	case errors.Is(err, errs.ErrRetryLimit):
		return "Maximum retry attempts reached"
	case errors.Is(err, errs.ErrPaymentRequired):
		return "No paid order found for this generation"
	default:
		return "Failed to retry generation"
	}
}
