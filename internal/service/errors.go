package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidReservationID is returned when a reservation ID is empty.
	ErrInvalidReservationID = errors.New("invalid reservation id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidDraftID is returned when a booking draft ID is empty.
	ErrInvalidDraftID = errors.New("invalid draft id")

	// ErrDraftNotFound is returned when no draft exists for the given ID
	// (expired session or never created).
	ErrDraftNotFound = errors.New("booking draft not found")

	// ErrStepMismatch is returned when the supplied step input does not match
	// the draft's active step.
	ErrStepMismatch = errors.New("input does not match the active booking step")

	// ErrCannotGoBack is returned when back is called on the first step.
	ErrCannotGoBack = errors.New("cannot go back from the first step")

	// ErrNotConfirmable is returned when confirm is called before the draft
	// has reached the confirmation step.
	ErrNotConfirmable = errors.New("draft has not reached the confirmation step")

	// ErrInvalidDistance is returned when the supplied route distance is not
	// strictly positive.
	ErrInvalidDistance = errors.New("distance must be greater than zero")

	// ErrVehicleInactive is returned when pricing is requested for an
	// inactive vehicle.
	ErrVehicleInactive = errors.New("vehicle is not active")

	// ErrInvalidPricePerKm is returned when a vehicle's per-km rate is outside
	// the sanity bounds for its type.
	ErrInvalidPricePerKm = errors.New("price per km outside bounds for vehicle type")

	// ErrUnknownService is returned when a selected add-on does not exist or
	// is not active. Fail-closed: unknown ids are never silently dropped.
	ErrUnknownService = errors.New("unknown or inactive service")

	// ErrInvalidDiscount is returned when a discount percent is outside [0,100).
	ErrInvalidDiscount = errors.New("discount percent out of range")

	// ErrCapacityExceeded is returned when the selected vehicle cannot hold
	// the draft's passengers or baggage.
	ErrCapacityExceeded = errors.New("vehicle capacity exceeded")

	// ErrInvalidPaymentMethod is returned for an unrecognized payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrPaymentMethodDisabled is returned when the chosen method is not
	// currently offered.
	ErrPaymentMethodDisabled = errors.New("payment method not offered")

	// ErrNoPaymentMethodAvailable is returned when settings leave no payment
	// method enabled. Checkout cannot proceed.
	ErrNoPaymentMethodAvailable = errors.New("no payment method available")

	// ErrInvalidCommissionPercent is returned when the driver commission
	// percent is outside (0,100).
	ErrInvalidCommissionPercent = errors.New("commission percent out of range")

	// ErrInvalidAmount is returned when a settlement amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrInvalidTransition is returned when a lifecycle operation is not
	// permitted from the reservation's current status. State is unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyAssigned is returned when assigning a different driver to an
	// already-assigned reservation.
	ErrAlreadyAssigned = errors.New("reservation already assigned to another driver")

	// ErrDriverHasActiveReservation is returned when a driver is already
	// serving an assigned or started reservation.
	ErrDriverHasActiveReservation = errors.New("driver already has an active reservation")

	// ErrDriverNotAvailable is returned when assigning an inactive driver.
	ErrDriverNotAvailable = errors.New("driver not available")

	// ErrCancelReasonRequired is returned when cancel is called without a reason.
	ErrCancelReasonRequired = errors.New("cancel reason is required")

	// ErrInvalidToken is returned when a verification token fails validation.
	ErrInvalidToken = errors.New("invalid verification token")

	// ErrInvalidDriverName is returned when a driver name is too short.
	ErrInvalidDriverName = errors.New("invalid driver name")

	// ErrInvalidDriverPhone is returned when a driver phone is invalid.
	ErrInvalidDriverPhone = errors.New("invalid driver phone")
)

// FieldError describes a validation failure scoped to a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-scoped validation failures for one step
// input. It is recoverable: the caller re-prompts the same step and no draft
// data is lost.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records a field failure.
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ok reports whether no failures were recorded.
func (e *ValidationError) ok() bool {
	return len(e.Fields) == 0
}
