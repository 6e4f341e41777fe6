package fulfillment

import (
	"context"
	"strconv"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
)

// Redirect targets after checkout
const (
	RedirectPricing   = "/pricing"
	RedirectDashboard = "/dashboard"
	RedirectError     = "/error"
)

// CompleteCheckout links the provider customer to the user after a paid
// checkout. Generation state is left to the webhook.
func (s *Service) CompleteCheckout(ctx context.Context, sessionID string) usecase.RedirectResult {
	if sessionID == "" {
		return usecase.RedirectResult{Location: RedirectPricing, Reason: "missing session id"}
	}

	fail := func(reason string, err error) usecase.RedirectResult {
		fields := map[string]any{"session_id": sessionID, "reason": reason}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Error("Error handling successful checkout", fields)
		return usecase.RedirectResult{Location: RedirectError, Reason: reason}
	}

	session, err := s.payments.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return fail("session lookup failed", err)
	}
	if session.CustomerID == "" {
		return fail("invalid customer data", nil)
	}
	if session.PaymentStatus != entity.PaymentStatusPaid {
		return fail("payment not successful", nil)
	}

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil || userID == 0 {
		return fail("missing client reference id", err)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fail("user not found", err)
	}
	if err := s.users.AttachCustomerID(ctx, userID, session.CustomerID); err != nil {
		return fail("attach customer failed", err)
	}

	s.logger.Info("Checkout completed", map[string]any{
		"session_id":  sessionID,
		"user_id":     userID,
		"customer_id": session.CustomerID,
	})
	return usecase.RedirectResult{Location: RedirectDashboard}
}
