package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// Config holds the token signing settings
type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// Validate checks the signing settings
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got: %s", c.TokenTTL)
	}
	return nil
}

// TokenManager issues and verifies HS256 bearer tokens whose subject is the user id
type TokenManager struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a token manager
func NewTokenManager(cfg Config, timeProvider coreport.TimeProvider) *TokenManager {
	return &TokenManager{
		secret:       []byte(cfg.JWTSecret),
		issuer:       cfg.Issuer,
		ttl:          cfg.TokenTTL,
		timeProvider: timeProvider,
	}
}

// Issue signs a token for userID
func (m *TokenManager) Issue(userID uint64) (string, error) {
	if userID == 0 {
		return "", errs.ErrUserNotFound
	}

	now := m.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token and returns the user id in its subject
func (m *TokenManager) Verify(raw string) (uint64, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	// jwt/v4 validates expiry against the wall clock
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid or expired token", errs.ErrAuthentication)
	}
	if m.issuer != "" && !claims.VerifyIssuer(m.issuer, true) {
		return 0, fmt.Errorf("%w: unexpected issuer", errs.ErrAuthentication)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: token subject is not a user id", errs.ErrAuthentication)
	}
	return userID, nil
}
