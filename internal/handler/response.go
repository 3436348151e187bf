package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/middleware"
	"rental/internal/repository"
	"rental/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unexpected errors are also reported to the request's transaction.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		middleware.NoticeError(c, err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRenterID),
		errors.Is(err, service.ErrInvalidOwnerID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidOdometer),
		errors.Is(err, service.ErrOdometerBelowStart),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyCancelReason),
		errors.Is(err, service.ErrInvalidClaimID),
		errors.Is(err, service.ErrInvalidLicensePlate),
		errors.Is(err, service.ErrInvalidVehicleStatus),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotTripParticipant),
		errors.Is(err, service.ErrStatusNotSettable):
		return http.StatusForbidden

	// Conflict errors - the entity exists but its state refuses the operation
	case errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrVehicleLocked),
		errors.Is(err, service.ErrVehicleNotFree),
		errors.Is(err, service.ErrVehicleNotVerified),
		errors.Is(err, service.ErrVehicleRented),
		errors.Is(err, service.ErrTripNotConfirmable),
		errors.Is(err, service.ErrTripNotStartable),
		errors.Is(err, service.ErrTripNotInProgress),
		errors.Is(err, service.ErrTripNotCancellable),
		errors.Is(err, service.ErrTripNotCompleted),
		errors.Is(err, service.ErrDuplicateLicensePlate),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
