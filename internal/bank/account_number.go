package bank

import (
	"strings"

	"github.com/google/uuid"
)

const accountNumberPrefix = "ACCT-"

// NewAccountNumber generates an account number in the form ACCT- followed by
// 12 hex characters taken from a random identifier. Uniqueness is ultimately
// guaranteed by the store; the provisioner retries on collision.
func NewAccountNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return accountNumberPrefix + raw[:12]
}
