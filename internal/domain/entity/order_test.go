package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
)

func TestNewOrder(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("positive amount starts paid", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(fixedTime)

		order, err := NewOrder(1, 42, "pi_123", 2900, mockTime)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusPaid, order.Status)
		assert.Equal(t, int64(2900), order.AmountPaid)
		assert.Equal(t, "pi_123", order.StripePaymentIntentID)
		assert.Equal(t, fixedTime, order.CreatedAt)
		assert.True(t, order.IsPaid())
	})

	t.Run("zero amount starts pending", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.On("Now").Return(fixedTime)

		order, err := NewOrder(1, 42, "pi_123", 0, mockTime)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.False(t, order.IsPaid())
	})

	t.Run("rejects missing references", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		_, err := NewOrder(0, 42, "pi_123", 100, mockTime)
		assert.ErrorIs(t, err, errs.ErrMalformedEvent)

		_, err = NewOrder(1, 42, "", 100, mockTime)
		assert.ErrorIs(t, err, errs.ErrMalformedEvent)

		_, err = NewOrder(1, 42, "pi_1", -5, mockTime)
		assert.ErrorIs(t, err, errs.ErrMalformedEvent)
	})
}

func TestOrder_NeedsPaidTransition(t *testing.T) {
	pending := &Order{Status: OrderStatusPending}
	paid := &Order{Status: OrderStatusPaid, AmountPaid: 2900}

	assert.True(t, pending.NeedsPaidTransition(2900))
	assert.False(t, pending.NeedsPaidTransition(0))
	assert.False(t, paid.NeedsPaidTransition(2900))
}

func TestUser_CustomerID(t *testing.T) {
	customer := "cus_123"

	assert.Equal(t, "", (&User{ID: 1}).CustomerID())
	assert.Equal(t, "cus_123", (&User{ID: 1, StripeCustomerID: &customer}).CustomerID())
}
