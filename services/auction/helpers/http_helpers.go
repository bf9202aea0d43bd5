package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"reverse-auction-coordinator/internal/auctionerrors"
	"reverse-auction-coordinator/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrDuplicateActiveBid):
		return http.StatusConflict, "active bid already exists, update it instead"
	case errors.Is(err, auctionerrors.ErrBidNotImprovement):
		return http.StatusConflict, "bid must improve on the stored total cost"
	case errors.Is(err, auctionerrors.ErrReserveExceeded):
		return http.StatusConflict, "total cost exceeds the reserve price"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid auction status transition"
	case errors.Is(err, auctionerrors.ErrUnknownCurrency):
		return http.StatusBadRequest, "unknown currency code"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrLotBusy):
		return http.StatusServiceUnavailable, "lot is busy, retry shortly"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
