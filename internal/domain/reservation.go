package domain

import "time"

// ReservationStatus represents the operational status of a confirmed reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusAssigned  ReservationStatus = "ASSIGNED"
	ReservationStatusStarted   ReservationStatus = "STARTED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCompleted || s == ReservationStatusCancelled
}

// Direction represents the direction of a transfer.
type Direction string

const (
	DirectionAirportToHotel Direction = "AIRPORT_TO_HOTEL"
	DirectionHotelToAirport Direction = "HOTEL_TO_AIRPORT"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionAirportToHotel, DirectionHotelToAirport:
		return Direction(s), true
	default:
		return "", false
	}
}

// Customer holds the contact details captured during booking.
type Customer struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FlightNumber    string `json:"flight_number,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// Reservation is the immutable snapshot of a booking draft taken at
// confirmation time, owned by dispatch from that point on. DriverShare and
// CompanyShare are only meaningful once Status is COMPLETED.
type Reservation struct {
	ID                string
	Direction         Direction
	Origin            string
	Destination       string
	Date              string // YYYY-MM-DD
	Time              string // HH:MM
	PassengerCount    int
	BaggageCount      int
	DistanceKm        float64
	VehicleID         string
	ServiceIDs        []string
	BasePrice         float64
	ServicesPrice     float64
	TotalPrice        float64
	FinalPrice        float64 // TotalPrice after the payment-method discount
	Customer          Customer
	PaymentMethod     PaymentMethod
	Status            ReservationStatus
	VerificationToken string
	DriverID          string // Empty until assigned
	DriverShare       float64
	CompanyShare      float64
	CreatedAt         time.Time
	StartedAt         time.Time
	CompletedAt       time.Time
	CancelledAt       time.Time
	CancelReason      string
}
