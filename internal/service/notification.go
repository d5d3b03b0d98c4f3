package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"transfer/internal/domain"
)

// EventType represents the type of a status-change event.
type EventType string

const (
	EventReservationConfirmed EventType = "RESERVATION_CONFIRMED"
	EventDriverAssigned       EventType = "DRIVER_ASSIGNED"
	EventTripStarted          EventType = "TRIP_STARTED"
	EventTripCompleted        EventType = "TRIP_COMPLETED"
	EventReservationCancelled EventType = "RESERVATION_CANCELLED"
	EventCommissionSettled    EventType = "COMMISSION_SETTLED"
)

// Event is a status-change event emitted for downstream consumers
// (dashboards, customer messaging). Delivery transport is out of scope; the
// service logs each event in a stable shape.
type Event struct {
	ID            string
	Type          EventType
	ReservationID string
	Message       string
	Data          map[string]interface{}
	CreatedAt     time.Time
}

// NotificationService emits reservation status-change events.
type NotificationService struct {
	// In a real deployment this would hold messaging clients (email for the
	// customer, push for the driver app, a bus for the dashboard).
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyReservationConfirmed emits the confirmation event for a new
// reservation.
func (s *NotificationService) NotifyReservationConfirmed(ctx context.Context, r *domain.Reservation) error {
	return s.emit(ctx, Event{
		Type:          EventReservationConfirmed,
		ReservationID: r.ID,
		Message:       fmt.Sprintf("Reservation confirmed for %s %s, total %.2f", r.Customer.FirstName, r.Customer.LastName, r.FinalPrice),
		Data: map[string]interface{}{
			"direction":      r.Direction,
			"date":           r.Date,
			"time":           r.Time,
			"payment_method": r.PaymentMethod,
			"final_price":    r.FinalPrice,
		},
	})
}

// NotifyDriverAssigned emits the assignment event.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, r *domain.Reservation, driver *domain.Driver) error {
	return s.emit(ctx, Event{
		Type:          EventDriverAssigned,
		ReservationID: r.ID,
		Message:       fmt.Sprintf("Driver %s assigned", driver.Name),
		Data: map[string]interface{}{
			"driver_id":   driver.ID,
			"driver_name": driver.Name,
		},
	})
}

// NotifyTripStarted emits the trip start event.
func (s *NotificationService) NotifyTripStarted(ctx context.Context, r *domain.Reservation) error {
	return s.emit(ctx, Event{
		Type:          EventTripStarted,
		ReservationID: r.ID,
		Message:       "Trip started",
		Data: map[string]interface{}{
			"driver_id":  r.DriverID,
			"started_at": r.StartedAt,
		},
	})
}

// NotifyTripCompleted emits the trip completion event.
func (s *NotificationService) NotifyTripCompleted(ctx context.Context, r *domain.Reservation) error {
	return s.emit(ctx, Event{
		Type:          EventTripCompleted,
		ReservationID: r.ID,
		Message:       fmt.Sprintf("Trip completed, total %.2f", r.FinalPrice),
		Data: map[string]interface{}{
			"driver_id":    r.DriverID,
			"completed_at": r.CompletedAt,
			"final_price":  r.FinalPrice,
		},
	})
}

// NotifyCommissionSettled emits the settlement event for financial reporting.
func (s *NotificationService) NotifyCommissionSettled(ctx context.Context, r *domain.Reservation) error {
	return s.emit(ctx, Event{
		Type:          EventCommissionSettled,
		ReservationID: r.ID,
		Message:       fmt.Sprintf("Commission settled: driver %.2f, company %.2f", r.DriverShare, r.CompanyShare),
		Data: map[string]interface{}{
			"driver_id":     r.DriverID,
			"driver_share":  r.DriverShare,
			"company_share": r.CompanyShare,
		},
	})
}

// NotifyReservationCancelled emits the cancellation event.
func (s *NotificationService) NotifyReservationCancelled(ctx context.Context, r *domain.Reservation, reason string) error {
	return s.emit(ctx, Event{
		Type:          EventReservationCancelled,
		ReservationID: r.ID,
		Message:       fmt.Sprintf("Reservation cancelled: %s", reason),
		Data: map[string]interface{}{
			"reason":    reason,
			"driver_id": r.DriverID,
		},
	})
}

// emit stamps and delivers an event. Currently logs; failures here never
// block a lifecycle transition.
func (s *NotificationService) emit(ctx context.Context, event Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()

	log.Printf("[event] type=%s reservation=%s message=%q", event.Type, event.ReservationID, event.Message)
	return nil
}
