package service

import (
	"context"
	"errors"
	"time"

	"transfer/internal/domain"
	"transfer/internal/redis"
	"transfer/internal/repository"
)

const assignLockTTL = 5 * time.Second

// TripService owns the operational lifecycle of confirmed reservations:
// PENDING -> ASSIGNED -> STARTED -> COMPLETED, with CANCELLED reachable from
// any non-terminal status. Transitions are compare-and-swap updates on the
// persisted status, so of two concurrent calls racing from the same stale
// state exactly one wins; the loser observes the new status and fails with
// ErrInvalidTransition. Repeating an operation that already reached its
// target state is a no-op success.
type TripService struct {
	reservationRepo repository.ReservationRepository
	driverRepo      repository.DriverRepository
	locks           redis.LockStoreInterface
	splitter        *CommissionSplitter
	driverPercent   float64
	notifier        *NotificationService
}

// NewTripService creates a new TripService. driverPercent is the configured
// driver commission ratio in (0,100).
func NewTripService(
	reservationRepo repository.ReservationRepository,
	driverRepo repository.DriverRepository,
	locks redis.LockStoreInterface,
	splitter *CommissionSplitter,
	driverPercent float64,
	notifier *NotificationService,
) *TripService {
	return &TripService{
		reservationRepo: reservationRepo,
		driverRepo:      driverRepo,
		locks:           locks,
		splitter:        splitter,
		driverPercent:   driverPercent,
		notifier:        notifier,
	}
}

// GetReservation retrieves a reservation by ID.
func (s *TripService) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	if id == "" {
		return nil, ErrInvalidReservationID
	}

	return s.reservationRepo.GetByID(ctx, id)
}

// GetAllReservations retrieves recent reservations for dispatch.
func (s *TripService) GetAllReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservationRepo.GetAll(ctx)
}

// AssignRequest contains the parameters for assigning a driver.
type AssignRequest struct {
	ReservationID string
	DriverID      string
}

// Assign moves a pending reservation to ASSIGNED and binds the driver.
// Re-assigning the same driver to an already-assigned reservation is a no-op;
// a different driver fails with ErrAlreadyAssigned.
func (s *TripService) Assign(ctx context.Context, req AssignRequest) (*domain.Reservation, error) {
	if req.ReservationID == "" {
		return nil, ErrInvalidReservationID
	}

	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	switch reservation.Status {
	case domain.ReservationStatusPending:
		// Proceed with assignment.
	case domain.ReservationStatusAssigned:
		if reservation.DriverID == req.DriverID {
			return reservation, nil
		}
		return nil, ErrAlreadyAssigned
	default:
		return nil, ErrInvalidTransition
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if driver.Status == domain.DriverStatusInactive {
		return nil, ErrDriverNotAvailable
	}

	if s.locks != nil {
		acquired, err := s.locks.AcquireDriverLock(ctx, req.DriverID, assignLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrDriverHasActiveReservation
		}
		defer func() { _ = s.locks.ReleaseDriverLock(ctx, req.DriverID) }()
	}

	active, err := s.reservationRepo.GetActiveByDriverID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if active != nil && active.ID != req.ReservationID {
		return nil, ErrDriverHasActiveReservation
	}

	if err := s.reservationRepo.AssignDriver(ctx, req.ReservationID, req.DriverID); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return s.resolveConflict(ctx, req.ReservationID, domain.ReservationStatusAssigned, req.DriverID)
		}
		return nil, err
	}

	if err := s.driverRepo.UpdateStatus(ctx, req.DriverID, domain.DriverStatusOnTrip); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	reservation.Status = domain.ReservationStatusAssigned
	reservation.DriverID = req.DriverID

	if s.notifier != nil {
		_ = s.notifier.NotifyDriverAssigned(ctx, reservation, driver)
	}

	return reservation, nil
}

// StartRequest contains the parameters for starting a trip.
type StartRequest struct {
	ReservationID string
}

// Start moves an assigned reservation to STARTED. The caller is expected to
// have verified the rider's QR token first; the lifecycle check here is
// authoritative regardless of what the token said.
func (s *TripService) Start(ctx context.Context, req StartRequest) (*domain.Reservation, error) {
	if req.ReservationID == "" {
		return nil, ErrInvalidReservationID
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	switch reservation.Status {
	case domain.ReservationStatusAssigned:
		// Proceed.
	case domain.ReservationStatusStarted:
		return reservation, nil
	default:
		return nil, ErrInvalidTransition
	}

	startedAt := time.Now()
	if err := s.reservationRepo.MarkStarted(ctx, req.ReservationID, startedAt); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return s.resolveConflict(ctx, req.ReservationID, domain.ReservationStatusStarted, "")
		}
		return nil, err
	}

	reservation.Status = domain.ReservationStatusStarted
	reservation.StartedAt = startedAt

	if s.notifier != nil {
		_ = s.notifier.NotifyTripStarted(ctx, reservation)
	}

	return reservation, nil
}

// CompleteRequest contains the parameters for completing a trip.
type CompleteRequest struct {
	ReservationID string
}

// Complete moves a started reservation to COMPLETED and settles the
// commission split in the same update. The split is computed exactly once:
// a repeated call finds the terminal status and returns the already-persisted
// shares without recomputation.
func (s *TripService) Complete(ctx context.Context, req CompleteRequest) (*domain.Reservation, error) {
	if req.ReservationID == "" {
		return nil, ErrInvalidReservationID
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	switch reservation.Status {
	case domain.ReservationStatusStarted:
		// Proceed.
	case domain.ReservationStatusCompleted:
		return reservation, nil
	default:
		return nil, ErrInvalidTransition
	}

	split, err := s.splitter.Split(reservation.FinalPrice, s.driverPercent)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if err := s.reservationRepo.MarkCompleted(ctx, req.ReservationID, completedAt, split.DriverShare, split.CompanyShare); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return s.resolveConflict(ctx, req.ReservationID, domain.ReservationStatusCompleted, "")
		}
		return nil, err
	}

	if reservation.DriverID != "" {
		if err := s.driverRepo.UpdateStatus(ctx, reservation.DriverID, domain.DriverStatusAvailable); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	reservation.Status = domain.ReservationStatusCompleted
	reservation.CompletedAt = completedAt
	reservation.DriverShare = split.DriverShare
	reservation.CompanyShare = split.CompanyShare

	if s.notifier != nil {
		_ = s.notifier.NotifyTripCompleted(ctx, reservation)
		_ = s.notifier.NotifyCommissionSettled(ctx, reservation)
	}

	return reservation, nil
}

// CancelRequest contains the parameters for cancelling a reservation.
type CancelRequest struct {
	ReservationID string
	Reason        string
}

// Cancel moves any non-terminal reservation to CANCELLED. A second cancel on
// an already-cancelled reservation is a no-op success. No commission is
// computed for cancelled trips.
func (s *TripService) Cancel(ctx context.Context, req CancelRequest) (*domain.Reservation, error) {
	if req.ReservationID == "" {
		return nil, ErrInvalidReservationID
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	switch reservation.Status {
	case domain.ReservationStatusCancelled:
		return reservation, nil
	case domain.ReservationStatusCompleted:
		return nil, ErrInvalidTransition
	}

	if req.Reason == "" {
		return nil, ErrCancelReasonRequired
	}

	cancelledAt := time.Now()
	if err := s.reservationRepo.MarkCancelled(ctx, req.ReservationID, cancelledAt, req.Reason); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return s.resolveConflict(ctx, req.ReservationID, domain.ReservationStatusCancelled, "")
		}
		return nil, err
	}

	if reservation.DriverID != "" {
		if err := s.driverRepo.UpdateStatus(ctx, reservation.DriverID, domain.DriverStatusAvailable); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	reservation.Status = domain.ReservationStatusCancelled
	reservation.CancelledAt = cancelledAt
	reservation.CancelReason = req.Reason

	if s.notifier != nil {
		_ = s.notifier.NotifyReservationCancelled(ctx, reservation, req.Reason)
	}

	return reservation, nil
}

// VerifyResult is the outcome of checking a verification token against the
// live reservation.
type VerifyResult struct {
	Reservation *domain.Reservation
	// UsableForStart reports whether scanning this token may start the trip.
	// A token for a cancelled or finished reservation is syntactically valid
	// but not usable; the lifecycle is authoritative.
	UsableForStart bool
}

// VerifyToken resolves a scanned QR token to its reservation and reports
// whether the trip may be started from it.
func (s *TripService) VerifyToken(ctx context.Context, tokens *TokenService, token string) (*VerifyResult, error) {
	reservationID, err := tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Reservation:    reservation,
		UsableForStart: reservation.Status == domain.ReservationStatusAssigned,
	}, nil
}

// resolveConflict re-reads a reservation after a lost compare-and-swap. If
// the concurrent winner already reached our target (and, for assignment, the
// same driver), the call is an idempotent success; otherwise the transition
// is invalid from the observed state.
func (s *TripService) resolveConflict(ctx context.Context, id string, target domain.ReservationStatus, driverID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == target {
		if target == domain.ReservationStatusAssigned && reservation.DriverID != driverID {
			return nil, ErrAlreadyAssigned
		}
		return reservation, nil
	}

	return nil, ErrInvalidTransition
}
