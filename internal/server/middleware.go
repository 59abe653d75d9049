package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"silent-auction/internal/identity"
	"silent-auction/services/auction/helpers"
	"silent-auction/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"caller":  c.GetString(helpers.CallerContextKey),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware resolves the authenticated caller identity and stores it
// in the request context. Requests without a resolvable identity are rejected
// before reaching any handler.
func IdentityMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := resolver.Resolve(c.Request)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, identity.ErrUnauthenticated) {
				status = http.StatusUnauthorized
			}
			utils.JSONError(c, status, err, "caller identity required")
			c.Abort()
			return
		}
		c.Set(helpers.CallerContextKey, caller)
		c.Next()
	}
}
