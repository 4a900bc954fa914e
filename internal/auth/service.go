package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ewallet/ewallet/internal/config"
	"github.com/ewallet/ewallet/internal/identity"
)

// ErrInvalidCredentials hides whether the username or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service issues and refreshes access tokens against the identity registry.
type Service struct {
	cfg    config.Config
	users  identity.Repository
	hasher identity.PasswordHasher
}

// NewService builds the auth service.
func NewService(cfg config.Config, users identity.Repository, hasher identity.PasswordHasher) *Service {
	return &Service{cfg: cfg, users: users, hasher: hasher}
}

// TokenPair bundles the issued tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login verifies username/password credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, username, password string) (identity.Projection, TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return identity.Projection{}, TokenPair{}, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return identity.Projection{}, TokenPair{}, ErrInvalidCredentials
	}

	access, accessExp, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return identity.Projection{}, TokenPair{}, err
	}
	refresh, _, err := s.sign(user, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return identity.Projection{}, TokenPair{}, err
	}

	pair := TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(accessExp).Seconds()),
	}
	return identity.Project(user), pair, nil
}

// Refresh verifies the refresh token and returns a new access token if the
// token version is still current.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := ParseAndVerifyHS256(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, errors.New("invalid refresh token")
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() >= int64(exp) {
		return "", 0, errors.New("refresh token expired")
	}
	sub, _ := claims["sub"].(float64)
	verFloat, _ := claims["ver"].(float64)
	ver := int(verFloat)

	user, err := s.users.FindByID(ctx, int64(sub))
	if err != nil {
		return "", 0, errors.New("user not found")
	}
	if user.TokenVersion != ver {
		return "", 0, errors.New("token version invalidated")
	}

	signed, _, err := s.sign(user, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Logout increments the token version so previously issued tokens become
// invalid.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	_, err = s.users.Update(ctx, user)
	return err
}

func (s *Service) sign(user identity.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := map[string]any{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"ver":      user.TokenVersion,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
