package identity

import (
	"net/mail"
	"regexp"
	"unicode/utf8"
)

var (
	usernamePattern    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	countryCodePattern = regexp.MustCompile(`^\+[0-9]{1,3}$`)
	phonePattern       = regexp.MustCompile(`^[0-9]{10,15}$`)
)

const minPasswordLen = 8

// ValidateRegistration checks every rule and returns a ValidationError
// listing all violations, or nil when the input is clean.
func ValidateRegistration(in RegistrationInput) *ValidationError {
	var v []string
	if l := utf8.RuneCountInString(in.Name); l < 2 || l > 50 {
		v = append(v, "name must be between 2 and 50 characters")
	}
	v = append(v, usernameViolations(in.Username)...)
	if _, err := mail.ParseAddress(in.Email); err != nil {
		v = append(v, "email must be a valid address")
	}
	if !countryCodePattern.MatchString(in.CountryCode) {
		v = append(v, "country code must start with + followed by 1-3 digits")
	}
	if !phonePattern.MatchString(in.PhoneNumber) {
		v = append(v, "phone number must be 10-15 digits")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		v = append(v, "password must be at least 8 characters")
	}
	if in.Password != in.ConfirmPassword {
		v = append(v, "password confirmation does not match")
	}
	if v != nil {
		return &ValidationError{Violations: v}
	}
	return nil
}

// ValidateUpdate checks only the fields an update actually changes.
func ValidateUpdate(in UpdateInput) *ValidationError {
	var v []string
	if in.Name != "" {
		if l := utf8.RuneCountInString(in.Name); l < 2 || l > 50 {
			v = append(v, "name must be between 2 and 50 characters")
		}
	}
	if in.Username != "" {
		v = append(v, usernameViolations(in.Username)...)
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			v = append(v, "email must be a valid address")
		}
	}
	if in.CountryCode != "" && !countryCodePattern.MatchString(in.CountryCode) {
		v = append(v, "country code must start with + followed by 1-3 digits")
	}
	if in.PhoneNumber != "" && !phonePattern.MatchString(in.PhoneNumber) {
		v = append(v, "phone number must be 10-15 digits")
	}
	if in.Password != "" {
		if utf8.RuneCountInString(in.Password) < minPasswordLen {
			v = append(v, "password must be at least 8 characters")
		}
		if in.Password != in.ConfirmPassword {
			v = append(v, "password confirmation does not match")
		}
	}
	if v != nil {
		return &ValidationError{Violations: v}
	}
	return nil
}

func usernameViolations(username string) []string {
	var v []string
	if l := utf8.RuneCountInString(username); l < 4 || l > 20 {
		v = append(v, "username must be between 4 and 20 characters")
	}
	if !usernamePattern.MatchString(username) {
		v = append(v, "username can only contain letters, numbers, and underscores")
	}
	return v
}
