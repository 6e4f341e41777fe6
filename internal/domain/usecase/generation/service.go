package generation

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// Service implements usecase.GenerationUseCase
type Service struct {
	generations persistence.GenerationRepository
	orders      persistence.OrderRepository
	dispatcher  Dispatcher
	logger      coreport.Logger
}

var _ usecase.GenerationUseCase = (*Service)(nil)

// NewService creates a new generation service
func NewService(
	generations persistence.GenerationRepository,
	orders persistence.OrderRepository,
	dispatcher Dispatcher,
	logger coreport.Logger,
) *Service {
	return &Service{
		generations: generations,
		orders:      orders,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// List returns the user's generations, newest first
func (s *Service) List(ctx context.Context, userID uint64) ([]*entity.Generation, error) {
	if userID == 0 {
		return nil, errs.ErrAuthentication
	}
	return s.generations.ListByUser(ctx, userID)
}

// Status returns id, status and image URL of a generation
func (s *Service) Status(ctx context.Context, generationID uint64) (*entity.GenerationSnapshot, error) {
	if generationID == 0 {
		return nil, errs.ErrInvalidGenerationID
	}

	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}

	snapshot := gen.Snapshot()
	return &snapshot, nil
}

// MarkFailed fails an owned generation that is still processing
func (s *Service) MarkFailed(ctx context.Context, userID, generationID uint64, reason string) error {
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
	if gen.Status != entity.StatusProcessing {
		return fmt.Errorf("%w: status is %s", errs.ErrInvalidState, gen.Status)
	}

	ok, err := s.generations.MarkFailed(ctx, generationID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: generation left processing", errs.ErrInvalidState)
	}

	if reason == "" {
		reason = "timeout"
	}
	s.logger.Info("Generation marked as failed", map[string]any{
		"generation_id": generationID,
		"user_id":       userID,
		"reason":        reason,
	})
	return nil
}
