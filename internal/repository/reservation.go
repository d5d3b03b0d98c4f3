package repository

import (
	"context"
	"time"

	"transfer/internal/domain"
)

// ReservationRepository defines the persistence operations for confirmed
// reservations. All status-changing methods are compare-and-swap updates:
// they only apply when the stored status still permits the transition and
// return ErrStatusConflict otherwise.
type ReservationRepository interface {
	// Create persists a newly confirmed reservation.
	Create(ctx context.Context, reservation *domain.Reservation) error

	// GetByID retrieves a reservation by ID.
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)

	// GetAll retrieves recent reservations, newest first.
	GetAll(ctx context.Context) ([]*domain.Reservation, error)

	// GetActiveByDriverID retrieves the assigned or started reservation for a
	// driver. Returns nil if the driver has no active reservation.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Reservation, error)

	// AssignDriver moves PENDING -> ASSIGNED and sets the driver.
	AssignDriver(ctx context.Context, id, driverID string) error

	// MarkStarted moves ASSIGNED -> STARTED and records the start time.
	MarkStarted(ctx context.Context, id string, startedAt time.Time) error

	// MarkCompleted moves STARTED -> COMPLETED, recording the completion time
	// and the settled commission shares in the same update.
	MarkCompleted(ctx context.Context, id string, completedAt time.Time, driverShare, companyShare float64) error

	// MarkCancelled moves any non-terminal status -> CANCELLED with a reason.
	MarkCancelled(ctx context.Context, id string, cancelledAt time.Time, reason string) error
}
