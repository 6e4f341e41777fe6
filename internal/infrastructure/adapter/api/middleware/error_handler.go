package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler turns a panicking handler into a 500 response
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			logger.Error("Panic in request handler", map[string]any{
				"panic":      fmt.Sprint(recovered),
				"method":     c.Request.Method,
				"path":       c.FullPath(),
				"request_id": RequestID(c),
				"stack":      string(debug.Stack()),
			})

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(errs.ErrInternalServer, http.StatusText(http.StatusInternalServerError)))
		}()

		c.Next()
	}
}
