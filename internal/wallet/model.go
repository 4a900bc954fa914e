package wallet

import "time"

// Wallet is the stored-value account provisioned alongside a user. The
// user reference is unique, so a user can never hold two wallets. Wallets
// always start with a zero balance regardless of country.
type Wallet struct {
	ID          int64
	PhoneNumber string // mirror of the owner's phone at creation time
	Balance     int64  // minor units
	Currency    string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
