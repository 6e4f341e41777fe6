package entity

// EventCheckoutSessionCompleted is the only payment event type the workflow acts on
const EventCheckoutSessionCompleted = "checkout.session.completed"

// PaymentStatusPaid is the checkout session payment status of a settled session
const PaymentStatusPaid = "paid"

// CheckoutSession is the provider-neutral view of a checkout session
type CheckoutSession struct {
	ID                string
	PaymentIntentID   string
	AmountTotal       int64
	ClientReferenceID string // user id as sent at checkout creation
	GenerationID      string // raw metadata value
	PaymentStatus     string
	CustomerID        string
}

// PaymentEvent is a verified event delivered by the payment provider
type PaymentEvent struct {
	ID      string
	Type    string
	Session *CheckoutSession // set for checkout session events
}

// CheckoutRequest describes a checkout session to open for one generation
type CheckoutRequest struct {
	UserID       uint64
	GenerationID uint64
	PriceID      string
	CustomerID   string
	SuccessURL   string
	CancelURL    string
}
