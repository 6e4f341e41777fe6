package fulfillment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
)

func paidSession() *entity.CheckoutSession {
	return &entity.CheckoutSession{
		ID:                "cs_1",
		ClientReferenceID: "5",
		PaymentStatus:     entity.PaymentStatusPaid,
		CustomerID:        "cus_1",
	}
}

func TestCompleteCheckout(t *testing.T) {
	t.Run("missing session id goes to pricing", func(t *testing.T) {
		f := newFixture(t)

		result := f.service.CompleteCheckout(f.ctx, "")

		assert.Equal(t, RedirectPricing, result.Location)
		f.payments.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("paid session attaches customer", func(t *testing.T) {
		f := newFixture(t)
		f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(paidSession(), nil).Once()
		f.users.On("GetByID", f.ctx, uint64(5)).Return(&entity.User{ID: 5}, nil).Once()
		f.users.On("AttachCustomerID", f.ctx, uint64(5), "cus_1").Return(nil).Once()

		result := f.service.CompleteCheckout(f.ctx, "cs_1")

		assert.Equal(t, RedirectDashboard, result.Location)
	})

	failures := []struct {
		name   string
		setup  func(f *fixture)
		reason string
	}{
		{"lookup error", func(f *fixture) {
			f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(nil, errors.New("no such session")).Once()
		}, "session lookup failed"},
		{"unpaid session", func(f *fixture) {
			s := paidSession()
			s.PaymentStatus = "unpaid"
			f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(s, nil).Once()
		}, "payment not successful"},
		{"no customer", func(f *fixture) {
			s := paidSession()
			s.CustomerID = ""
			f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(s, nil).Once()
		}, "invalid customer data"},
		{"no client reference", func(f *fixture) {
			s := paidSession()
			s.ClientReferenceID = ""
			f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(s, nil).Once()
		}, "missing client reference id"},
		{"unknown user", func(f *fixture) {
			f.payments.On("GetCheckoutSession", f.ctx, "cs_1").Return(paidSession(), nil).Once()
			f.users.On("GetByID", f.ctx, uint64(5)).Return(nil, errs.ErrUserNotFound).Once()
		}, "user not found"},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result := f.service.CompleteCheckout(f.ctx, "cs_1")

			assert.Equal(t, RedirectError, result.Location)
			assert.Equal(t, tt.reason, result.Reason)
			f.users.AssertNotCalled(t, "AttachCustomerID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
