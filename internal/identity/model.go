package identity

import (
	"time"

	"github.com/ewallet/ewallet/internal/country"
)

// Role classifies a user's privilege level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the identity record. Instances are constructed once and never
// mutated in place; the update path builds a fresh copy.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PhoneNumber  string // country code + national number, boundary not stored
	PasswordHash []byte
	Role         Role
	TokenVersion int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Projection is the caller-facing view of a user. It never carries the
// password hash, and the stored phone is split back into its parts.
type Projection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	CountryCode string    `json:"country_code"`
	PhoneNumber string    `json:"phone_number"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project builds the sanitized projection of a user.
func Project(u User) Projection {
	cc, national := country.Split(u.PhoneNumber)
	return Projection{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		CountryCode: cc,
		PhoneNumber: national,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RegistrationInput captures a provisioning request.
type RegistrationInput struct {
	Name            string
	Username        string
	Email           string
	CountryCode     string
	PhoneNumber     string // national number, digits only
	Password        string
	ConfirmPassword string
}

// FullPhone returns the concatenated phone number as stored.
func (in RegistrationInput) FullPhone() string {
	return country.Join(in.CountryCode, in.PhoneNumber)
}

// UpdateInput carries the mutable identity fields. Empty strings mean
// "leave unchanged"; a non-empty Password must come with a matching
// ConfirmPassword.
type UpdateInput struct {
	Name            string
	Username        string
	Email           string
	CountryCode     string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}
