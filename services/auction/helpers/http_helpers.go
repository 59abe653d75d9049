package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"silent-auction/internal/auctionerrors"
	"silent-auction/utils"
)

// CallerContextKey is the gin context key under which the identity middleware
// stores the authenticated caller.
const CallerContextKey = "caller"

// Caller returns the authenticated caller identity set by the middleware.
func Caller(c *gin.Context) string {
	return c.GetString(CallerContextKey)
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// ErrNoAccess covers both absence and lack of channel membership; both map to
// 404 so a rejected caller cannot probe for silent auctions.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNoAccess):
		return http.StatusNotFound, "auction not found or not accessible"
	case errors.Is(err, auctionerrors.ErrPermissionDenied):
		return http.StatusForbidden, "permission denied"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction already closed"
	case errors.Is(err, auctionerrors.ErrAdminExists):
		return http.StatusConflict, "administrator already enrolled"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
