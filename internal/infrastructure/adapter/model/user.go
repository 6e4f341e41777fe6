package model

import (
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// User represents the columns of the users table this service reads and writes.
// The table is owned by the account service; rows are never created here.
type User struct {
	ID               uint64    `gorm:"primaryKey"`
	Email            string    `gorm:"not null;size:255;uniqueIndex"`
	StripeCustomerID *string   `gorm:"column:stripe_customer_id;size:255;uniqueIndex"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        *time.Time
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// ToEntity converts the model to a domain user
func (u *User) ToEntity() *entity.User {
	return &entity.User{
		ID:               u.ID,
		Email:            u.Email,
		StripeCustomerID: u.StripeCustomerID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
