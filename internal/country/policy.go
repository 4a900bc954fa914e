package country

import "strings"

// Policy holds the account defaults derived from a phone country code.
// Balances are in minor units of the currency.
type Policy struct {
	Currency       string
	InitialBalance int64
}

// policies maps dialing prefixes to signup defaults. Adding a country is a
// single row here; no caller changes.
var policies = map[string]Policy{
	"+91": {Currency: "INR", InitialBalance: 10000}, // India
	"+1":  {Currency: "USD", InitialBalance: 100},   // USA/Canada
	"+44": {Currency: "GBP", InitialBalance: 500},   // UK
	"+81": {Currency: "JPY", InitialBalance: 100},   // Japan
	"+49": {Currency: "EUR", InitialBalance: 100},   // Germany
	"+33": {Currency: "EUR", InitialBalance: 100},   // France
	"+86": {Currency: "CNY", InitialBalance: 100},   // China
}

// Table resolves country policies. The default tuple applies to any
// unrecognized prefix; its balance is the configurable signup bonus.
type Table struct {
	def Policy
}

// NewTable builds a policy table with the given default signup bonus.
func NewTable(defaultBonus int64) Table {
	return Table{def: Policy{Currency: "USD", InitialBalance: defaultBonus}}
}

// Lookup returns the policy for a dialing prefix such as "+91". Unknown
// prefixes resolve to the default; this is a total function.
func (t Table) Lookup(countryCode string) Policy {
	if p, ok := policies[countryCode]; ok {
		return p
	}
	return t.def
}

// ForPhone derives the policy from a full stored phone number by matching
// its country-code prefix.
func (t Table) ForPhone(phone string) Policy {
	cc, _ := Split(phone)
	return t.Lookup(cc)
}

// Split divides a stored phone number into its country code and national
// number using longest-prefix matching against the known dialing codes.
// A number whose prefix is unknown splits after the first digit, so that
// Join(Split(p)) == p always holds.
func Split(phone string) (countryCode, national string) {
	if !strings.HasPrefix(phone, "+") {
		return "", phone
	}
	// Dialing codes are 1-3 digits; prefer the longest known match.
	for l := 4; l >= 2; l-- {
		if len(phone) < l {
			continue
		}
		if _, ok := policies[phone[:l]]; ok {
			return phone[:l], phone[l:]
		}
	}
	if len(phone) >= 2 {
		return phone[:2], phone[2:]
	}
	return phone, ""
}

// Join reassembles a full phone number from its parts.
func Join(countryCode, national string) string {
	return countryCode + national
}
