package entity

import "time"

// User is the subset of the account record the fulfillment workflow touches
type User struct {
	ID               uint64
	Email            string
	StripeCustomerID *string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// CustomerID returns the payment provider customer id or an empty string
func (u *User) CustomerID() string {
	if u.StripeCustomerID == nil {
		return ""
	}
	return *u.StripeCustomerID
}
