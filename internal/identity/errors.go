package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that no user matches the requested key.
var ErrNotFound = errors.New("user not found")

// DuplicateError reports a uniqueness violation on one of the identity
// attributes, whether caught by a registry pre-check or by the store's
// unique constraint at commit time.
type DuplicateError struct {
	Field string // "username", "email", "phone_number" or "account_number"
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

// ValidationError lists every input rule a request violated. It is produced
// before any persistence is attempted.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Violations, "; ")
}
