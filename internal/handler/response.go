package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"transfer/internal/repository"
	"transfer/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []service.FieldError `json:"fields,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Field-scoped validation failures carry their per-field messages so the
// client can re-render the step without losing other fields.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
		return
	}

	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound

	// Bad input - Bad Request
	case errors.Is(err, service.ErrInvalidDraftID),
		errors.Is(err, service.ErrInvalidReservationID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidCommissionPercent),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrPaymentMethodDisabled),
		errors.Is(err, service.ErrVehicleInactive),
		errors.Is(err, service.ErrInvalidPricePerKm),
		errors.Is(err, service.ErrUnknownService),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrCancelReasonRequired),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidDriverName),
		errors.Is(err, service.ErrInvalidDriverPhone):
		return http.StatusBadRequest

	// Conflict errors - the operation is not permitted from the current state
	case errors.Is(err, service.ErrStepMismatch),
		errors.Is(err, service.ErrCannotGoBack),
		errors.Is(err, service.ErrNotConfirmable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyAssigned),
		errors.Is(err, service.ErrDriverHasActiveReservation),
		errors.Is(err, service.ErrDriverNotAvailable):
		return http.StatusConflict

	// No payment method enabled - checkout cannot proceed anywhere
	case errors.Is(err, service.ErrNoPaymentMethodAvailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
