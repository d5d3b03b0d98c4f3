package domain

import "time"

// BookingStep identifies the active step of the booking wizard.
type BookingStep int

const (
	StepRoute BookingStep = iota + 1
	StepVehicleAndServices
	StepPersonalInfo
	StepPayment
	StepConfirmation
)

// String returns the display name of the step.
func (s BookingStep) String() string {
	switch s {
	case StepRoute:
		return "ROUTE"
	case StepVehicleAndServices:
		return "VEHICLE_AND_SERVICES"
	case StepPersonalInfo:
		return "PERSONAL_INFO"
	case StepPayment:
		return "PAYMENT"
	case StepConfirmation:
		return "CONFIRMATION"
	default:
		return "UNKNOWN"
	}
}

// ReservationDraft is the mutable reservation being assembled across the
// wizard steps. A draft belongs to exactly one booking session; callers must
// not interleave operations on the same draft.
type ReservationDraft struct {
	ID             string      `json:"id"`
	Step           BookingStep `json:"step"`
	Direction      Direction   `json:"direction"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	PassengerCount int         `json:"passenger_count"`
	BaggageCount   int         `json:"baggage_count"`
	DistanceKm     float64     `json:"distance_km"`
	VehicleID      string      `json:"vehicle_id,omitempty"`
	ServiceIDs     []string    `json:"service_ids,omitempty"`
	BasePrice      float64     `json:"base_price"`
	ServicesPrice  float64     `json:"services_price"`
	TotalPrice     float64     `json:"total_price"`
	FinalPrice     float64     `json:"final_price"`
	Customer       Customer    `json:"customer"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// HasService reports whether the given add-on id is already selected.
func (d *ReservationDraft) HasService(id string) bool {
	for _, s := range d.ServiceIDs {
		if s == id {
			return true
		}
	}
	return false
}
