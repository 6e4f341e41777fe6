package repository

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenerationRepository implements persistence.GenerationRepository using GORM
type GenerationRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errors       errorHandler
}

// NewGenerationRepository creates a new GenerationRepository instance
func NewGenerationRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *GenerationRepository {
	return &GenerationRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errors: errorHandler{
			logger:     logger,
			classifier: NewErrorClassifier(),
			notFound:   errs.ErrGenerationNotFound,
		},
	}
}

// Create saves a new generation and assigns its ID
func (r *GenerationRepository) Create(ctx context.Context, generation *entity.Generation) error {
	r.logger.Debug("Creating generation", map[string]any{
		"user_id": generation.UserID,
		"status":  generation.Status,
	})

	row := model.GenerationFromEntity(generation)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return r.errors.handle("creating generation", err, map[string]any{"user_id": generation.UserID})
	}

	generation.ID = row.ID
	r.logger.Info("Generation created", map[string]any{
		"generation_id": row.ID,
		"user_id":       row.UserID,
	})
	return nil
}

// GetByID retrieves a generation by ID
func (r *GenerationRepository) GetByID(ctx context.Context, id uint64) (*entity.Generation, error) {
	var row model.Generation
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, r.errors.handle("getting generation", err, map[string]any{"generation_id": id})
	}
	return row.ToEntity(), nil
}

// ListByUser returns the user's generations, newest first
func (r *GenerationRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Generation, error) {
	var rows []model.Generation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.errors.handle("listing generations", err, map[string]any{"user_id": userID})
	}

	generations := make([]*entity.Generation, 0, len(rows))
	for i := range rows {
		generations = append(generations, rows[i].ToEntity())
	}
	return generations, nil
}

// StartProcessing moves PENDING_PAYMENT to PROCESSING
func (r *GenerationRepository) StartProcessing(ctx context.Context, id uint64) (bool, error) {
	return r.transition("starting generation", id,
		r.db.WithContext(ctx).Model(&model.Generation{}).
			Where("id = ? AND status = ?", id, string(entity.StatusPendingPayment)),
		map[string]any{
			"status":     string(entity.StatusProcessing),
			"updated_at": r.timeProvider.Now(),
		})
}

// BeginRetry moves FAILED to PROCESSING and increments the retry counter
// while it is below maxRetries
func (r *GenerationRepository) BeginRetry(ctx context.Context, id uint64, maxRetries int) (bool, error) {
	return r.transition("retrying generation", id,
		r.db.WithContext(ctx).Model(&model.Generation{}).
			Where("id = ? AND status = ? AND retry_count < ?", id, string(entity.StatusFailed), maxRetries),
		map[string]any{
			"status":      string(entity.StatusProcessing),
			"retry_count": gorm.Expr("retry_count + 1"),
			"updated_at":  r.timeProvider.Now(),
		})
}

// MarkCompleted stores the output URL and moves PROCESSING or FAILED to COMPLETED
func (r *GenerationRepository) MarkCompleted(ctx context.Context, id uint64, imageURL string) (bool, error) {
	return r.transition("completing generation", id,
		r.db.WithContext(ctx).Model(&model.Generation{}).
			Where("id = ? AND status IN ?", id, []string{string(entity.StatusProcessing), string(entity.StatusFailed)}),
		map[string]any{
			"status":     string(entity.StatusCompleted),
			"image_url":  imageURL,
			"updated_at": r.timeProvider.Now(),
		})
}

// MarkFailed moves PROCESSING to FAILED and clears the output URL
func (r *GenerationRepository) MarkFailed(ctx context.Context, id uint64) (bool, error) {
	return r.transition("failing generation", id,
		r.db.WithContext(ctx).Model(&model.Generation{}).
			Where("id = ? AND status = ?", id, string(entity.StatusProcessing)),
		map[string]any{
			"status":     string(entity.StatusFailed),
			"image_url":  nil,
			"updated_at": r.timeProvider.Now(),
		})
}

// transition applies a conditional update and reports whether it matched a row
func (r *GenerationRepository) transition(operation string, id uint64, query *gorm.DB, values map[string]any) (bool, error) {
	result := query.Updates(values)
	if result.Error != nil {
		return false, r.errors.handle(operation, result.Error, map[string]any{"generation_id": id})
	}

	applied := result.RowsAffected > 0
	r.logger.Debug("Generation transition", map[string]any{
		"generation_id": id,
		"operation":     operation,
		"status":        values["status"],
		"applied":       applied,
	})
	return applied, nil
}
