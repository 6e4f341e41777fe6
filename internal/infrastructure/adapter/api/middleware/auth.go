package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "bearer "
	userIDKey    = "userID"
)

// TokenVerifier resolves a bearer token to a user id
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// Auth rejects requests without a valid bearer token and stores the user id
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errs.ErrAuthentication, "Not authenticated"))
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errs.ErrAuthentication, "Invalid or expired token"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 on public routes
func UserID(c *gin.Context) uint64 {
	return c.GetUint64(userIDKey)
}
