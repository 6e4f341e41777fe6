package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
)

func newManager(t *testing.T, now time.Time) *TokenManager {
	clock := coremocks.NewMockTimeProvider(t)
	clock.On("Now").Return(now).Maybe()
	return NewTokenManager(Config{JWTSecret: "test-secret", Issuer: "headshot-service", TokenTTL: time.Hour}, clock)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := newManager(t, time.Now())

	token, err := m.Issue(42)
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestTokenManager_Issue_RejectsAnonymous(t *testing.T) {
	m := newManager(t, time.Now())

	_, err := m.Issue(0)

	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestTokenManager_Verify(t *testing.T) {
	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "headshot-service",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	otherIssuer := valid()
	otherIssuer.Issuer = "someone-else"
	badSubject := valid()
	badSubject.Subject = "alice"
	zeroSubject := valid()
	zeroSubject.Subject = "0"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid())},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, []byte("test-secret"), valid())},
		{"expired", sign(jwt.SigningMethodHS256, []byte("test-secret"), expired)},
		{"other issuer", sign(jwt.SigningMethodHS256, []byte("test-secret"), otherIssuer)},
		{"non numeric subject", sign(jwt.SigningMethodHS256, []byte("test-secret"), badSubject)},
		{"zero subject", sign(jwt.SigningMethodHS256, []byte("test-secret"), zeroSubject)},
	}

	m := newManager(t, time.Now())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, errs.ErrAuthentication)
		})
	}

	t.Run("valid", func(t *testing.T) {
		userID, err := m.Verify(sign(jwt.SigningMethodHS256, []byte("test-secret"), valid()))
		require.NoError(t, err)
		assert.Equal(t, uint64(7), userID)
	})
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{JWTSecret: "s", TokenTTL: time.Hour}.Validate())
	assert.Error(t, Config{JWTSecret: " ", TokenTTL: time.Hour}.Validate())
	assert.Error(t, Config{JWTSecret: "s"}.Validate())
}
