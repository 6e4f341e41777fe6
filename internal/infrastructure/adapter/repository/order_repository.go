package repository

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errors       errorHandler
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errors: errorHandler{
			logger:     logger,
			classifier: NewErrorClassifier(),
			notFound:   errs.ErrOrderNotFound,
			duplicate:  errs.ErrDuplicateOrder,
		},
	}
}

// Create saves a new order. A conflicting payment intent leaves the
// existing row untouched and returns ErrDuplicateOrder without aborting
// the surrounding transaction.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	fields := map[string]any{
		"payment_intent_id": order.StripePaymentIntentID,
		"generation_id":     order.GenerationID,
		"status":            order.Status,
	}
	r.logger.Debug("Creating order", fields)

	row := model.OrderFromEntity(order)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_payment_intent_id"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		return r.errors.handle("creating order", result.Error, fields)
	}
	if result.RowsAffected == 0 {
		r.logger.Info("Order already exists for payment intent", fields)
		return errs.ErrDuplicateOrder
	}

	order.ID = row.ID
	order.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByPaymentIntentID retrieves the order for a payment intent
func (r *OrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error) {
	var row model.Order
	err := r.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", paymentIntentID).
		First(&row).Error
	if err != nil {
		return nil, r.errors.handle("getting order", err, map[string]any{"payment_intent_id": paymentIntentID})
	}
	return row.ToEntity(), nil
}

// MarkPaid sets the amount and paid status of an order that is not yet paid
func (r *OrderRepository) MarkPaid(ctx context.Context, paymentIntentID string, amountPaid int64, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("stripe_payment_intent_id = ? AND status <> ?", paymentIntentID, string(entity.OrderStatusPaid)).
		Updates(map[string]any{
			"amount_paid": amountPaid,
			"status":      string(entity.OrderStatusPaid),
			"updated_at":  paidAt,
		})
	if result.Error != nil {
		return false, r.errors.handle("marking order paid", result.Error, map[string]any{"payment_intent_id": paymentIntentID})
	}

	applied := result.RowsAffected > 0
	r.logger.Debug("Order paid transition", map[string]any{
		"payment_intent_id": paymentIntentID,
		"amount_paid":       amountPaid,
		"applied":           applied,
	})
	return applied, nil
}

// HasPaidOrder reports whether any paid order references the generation
func (r *OrderRepository) HasPaidOrder(ctx context.Context, generationID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("generation_id = ? AND status = ?", generationID, string(entity.OrderStatusPaid)).
		Count(&count).Error
	if err != nil {
		return false, r.errors.handle("checking paid order", err, map[string]any{"generation_id": generationID})
	}
	return count > 0, nil
}
