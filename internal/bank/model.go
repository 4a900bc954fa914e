package bank

import "time"

// Account is the bank-linked account provisioned alongside a user. Exactly
// one exists per user; it is never created standalone.
type Account struct {
	ID            int64
	AccountNumber string
	PhoneNumber   string // mirror of the owner's phone at creation time
	Balance       int64  // minor units, non-negative
	Currency      string
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
