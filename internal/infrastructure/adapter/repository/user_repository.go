package repository

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errors       errorHandler
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errors: errorHandler{
			logger:     logger,
			classifier: NewErrorClassifier(),
			notFound:   errs.ErrUserNotFound,
			// another user already holds the customer id
			duplicate: errs.ErrDataIntegrity,
		},
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, r.errors.handle("getting user", err, map[string]any{"user_id": id})
	}
	return row.ToEntity(), nil
}

// AttachCustomerID stores the payment provider customer id on the user
func (r *UserRepository) AttachCustomerID(ctx context.Context, userID uint64, customerID string) error {
	fields := map[string]any{"user_id": userID, "customer_id": customerID}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"stripe_customer_id": customerID,
			"updated_at":         r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.errors.handle("attaching customer id", result.Error, fields)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("User not found while attaching customer id", fields)
		return errs.ErrUserNotFound
	}

	r.logger.Info("Customer id attached to user", fields)
	return nil
}
