package model

import (
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// Order represents the database model for payment orders
type Order struct {
	ID                    uint64     `gorm:"primaryKey;autoIncrement"`
	UserID                uint64     `gorm:"not null;index"`
	GenerationID          uint64     `gorm:"not null"`
	StripePaymentIntentID string     `gorm:"column:stripe_payment_intent_id;not null;size:255"`
	AmountPaid            int64      `gorm:"not null;default:0"`
	Status                string     `gorm:"not null;size:16;default:pending"`
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             *time.Time

	User       User       `gorm:"foreignKey:UserID;references:ID"`
	Generation Generation `gorm:"foreignKey:GenerationID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// ToEntity converts the model to a domain order
func (o *Order) ToEntity() *entity.Order {
	return &entity.Order{
		ID:                    o.ID,
		UserID:                o.UserID,
		GenerationID:          o.GenerationID,
		StripePaymentIntentID: o.StripePaymentIntentID,
		AmountPaid:            o.AmountPaid,
		Status:                entity.OrderStatus(o.Status),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// OrderFromEntity builds a model from a domain order
func OrderFromEntity(o *entity.Order) *Order {
	return &Order{
		ID:                    o.ID,
		UserID:                o.UserID,
		GenerationID:          o.GenerationID,
		StripePaymentIntentID: o.StripePaymentIntentID,
		AmountPaid:            o.AmountPaid,
		Status:                string(o.Status),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
