package identity

import (
	"strings"
	"testing"
)

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Name:            "Asha Verma",
		Username:        "asha_verma",
		Email:           "asha@example.com",
		CountryCode:     "+91",
		PhoneNumber:     "9876543210",
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RegistrationInput)
		violation string // empty means the input must pass
	}{
		{"valid", func(in *RegistrationInput) {}, ""},
		{"short name", func(in *RegistrationInput) { in.Name = "A" }, "name"},
		{"multibyte name counted in runes", func(in *RegistrationInput) { in.Name = strings.Repeat("é", 50) }, ""},
		{"two-rune name", func(in *RegistrationInput) { in.Name = "Ëa" }, ""},
		{"name over fifty runes", func(in *RegistrationInput) { in.Name = strings.Repeat("é", 51) }, "name"},
		{"multibyte password counted in runes", func(in *RegistrationInput) {
			in.Password, in.ConfirmPassword = "пароль№8", "пароль№8"
		}, ""},
		{"short username", func(in *RegistrationInput) { in.Username = "ab" }, "username"},
		{"username bad chars", func(in *RegistrationInput) { in.Username = "bad-user!" }, "username"},
		{"bad email", func(in *RegistrationInput) { in.Email = "not-an-email" }, "email"},
		{"bad country code", func(in *RegistrationInput) { in.CountryCode = "91" }, "country code"},
		{"country code too long", func(in *RegistrationInput) { in.CountryCode = "+9112" }, "country code"},
		{"short phone", func(in *RegistrationInput) { in.PhoneNumber = "12345" }, "phone"},
		{"short password", func(in *RegistrationInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, "password"},
		{"confirmation mismatch", func(in *RegistrationInput) { in.ConfirmPassword = "different1" }, "confirmation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			verr := ValidateRegistration(in)
			if tc.violation == "" {
				if verr != nil {
					t.Fatalf("expected valid input, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected violation containing %q, got none", tc.violation)
			}
			if !strings.Contains(verr.Error(), tc.violation) {
				t.Fatalf("expected violation containing %q, got %v", tc.violation, verr)
			}
		})
	}
}

func TestValidateRegistrationCollectsAllViolations(t *testing.T) {
	verr := ValidateRegistration(RegistrationInput{})
	if verr == nil {
		t.Fatal("expected violations for empty input")
	}
	if len(verr.Violations) < 5 {
		t.Fatalf("expected every rule reported, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateUpdateSkipsUnsetFields(t *testing.T) {
	if verr := ValidateUpdate(UpdateInput{}); verr != nil {
		t.Fatalf("empty update should be valid, got %v", verr)
	}
	if verr := ValidateUpdate(UpdateInput{Email: "broken"}); verr == nil {
		t.Fatal("expected violation for malformed email")
	}
	if verr := ValidateUpdate(UpdateInput{Password: "longenough1"}); verr == nil {
		t.Fatal("expected violation for missing password confirmation")
	}
}
