package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	tport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// OrderStatus defines possible status values for an order
type OrderStatus string

// OrderStatus constants
const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// Order is one payment transaction tied to exactly one generation
type Order struct {
	ID                    uint64
	UserID                uint64
	GenerationID          uint64
	StripePaymentIntentID string
	AmountPaid            int64 // minor currency units
	Status                OrderStatus
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}

// NewOrder creates an order for a payment intent. A positive amount means the
// payment settled and the order starts out paid.
func NewOrder(userID, generationID uint64, paymentIntentID string, amountPaid int64, timeProvider tport.TimeProvider) (*Order, error) {
	if userID == 0 || generationID == 0 {
		return nil, errs.ErrMalformedEvent
	}
	if paymentIntentID == "" {
		return nil, fmt.Errorf("%w: missing payment intent", errs.ErrMalformedEvent)
	}
	if amountPaid < 0 {
		return nil, fmt.Errorf("%w: negative amount", errs.ErrMalformedEvent)
	}

	status := OrderStatusPending
	if amountPaid > 0 {
		status = OrderStatusPaid
	}

	return &Order{
		UserID:                userID,
		GenerationID:          generationID,
		StripePaymentIntentID: paymentIntentID,
		AmountPaid:            amountPaid,
		Status:                status,
		CreatedAt:             timeProvider.Now(),
	}, nil
}

// IsPaid reports whether the order has settled
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// NeedsPaidTransition reports whether a delivery with amountPaid should
// move this order to paid
func (o *Order) NeedsPaidTransition(amountPaid int64) bool {
	return !o.IsPaid() && amountPaid > 0
}
