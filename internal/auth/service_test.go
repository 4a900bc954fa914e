package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ewallet/ewallet/internal/config"
	"github.com/ewallet/ewallet/internal/identity"
)

func seedUser(t *testing.T, repo identity.Repository, username, password string) identity.User {
	t.Helper()
	hash, err := identity.BcryptHasher{}.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), identity.User{
		Name:         "Asha Verma",
		Username:     username,
		Email:        username + "@example.com",
		PhoneNumber:  "+919876543210",
		PasswordHash: hash,
		Role:         identity.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		RefreshSecret:   "test-refresh",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := identity.NewMemoryRepository()
	seedUser(t, repo, "asha_verma", "s3cretpass")
	svc := NewService(testConfig(), repo, identity.BcryptHasher{})

	projection, pair, err := svc.Login(context.Background(), "asha_verma", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if projection.Username != "asha_verma" {
		t.Fatalf("unexpected projection: %+v", projection)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := ParseAndVerifyHS256(pair.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims["username"] != "asha_verma" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := identity.NewMemoryRepository()
	seedUser(t, repo, "asha_verma", "s3cretpass")
	svc := NewService(testConfig(), repo, identity.BcryptHasher{})

	if _, _, err := svc.Login(context.Background(), "asha_verma", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "who_dis", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := seedUser(t, repo, "asha_verma", "s3cretpass")
	svc := NewService(testConfig(), repo, identity.BcryptHasher{})

	_, pair, err := svc.Login(context.Background(), "asha_verma", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access, exp, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" || exp <= 0 {
		t.Fatal("expected fresh access token")
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Fatal("refresh must fail after logout bumps the token version")
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	claims := map[string]any{"sub": float64(7), "exp": float64(time.Now().Add(time.Hour).Unix())}
	token, err := SignHS256(claims, []byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parsed, err := ParseAndVerifyHS256(token, []byte("k"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if parsed["sub"] != float64(7) {
		t.Fatalf("claims mangled: %v", parsed)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("wrong")); err == nil {
		t.Fatal("verification must fail with the wrong secret")
	}
}
