package bank

import (
	"regexp"
	"testing"
)

func TestNewAccountNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ACCT-[0-9a-f]{12}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewAccountNumber()
		if !pattern.MatchString(n) {
			t.Fatalf("bad account number: %s", n)
		}
		if seen[n] {
			t.Fatalf("generator repeated %s within 100 draws", n)
		}
		seen[n] = true
	}
}
