package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"transfer/internal/domain"
	"transfer/internal/repository"
)

const reservationColumns = `
	id, direction, origin, destination, transfer_date, transfer_time,
	passenger_count, baggage_count, distance_km, vehicle_id, service_ids,
	base_price, services_price, total_price, final_price,
	first_name, last_name, email, phone, flight_number, special_requests,
	payment_method, status, verification_token, driver_id,
	driver_share, company_share,
	created_at, started_at, completed_at, cancelled_at, cancel_reason
`

// ReservationRepository is a PostgreSQL implementation of
// repository.ReservationRepository. Status transitions are single-statement
// compare-and-swap updates guarded by the current status.
type ReservationRepository struct {
	q Querier
}

// NewReservationRepository creates a new PostgreSQL reservation repository.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{q: db}
}

// NewReservationRepositoryWithTx creates a reservation repository using a transaction.
func NewReservationRepositoryWithTx(tx *sql.Tx) *ReservationRepository {
	return &ReservationRepository{q: tx}
}

// Create persists a newly confirmed reservation.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		        $29, $30, $31, $32)
	`

	_, err := r.q.ExecContext(ctx, query,
		res.ID,
		res.Direction,
		res.Origin,
		res.Destination,
		res.Date,
		res.Time,
		res.PassengerCount,
		res.BaggageCount,
		res.DistanceKm,
		res.VehicleID,
		pq.Array(res.ServiceIDs),
		res.BasePrice,
		res.ServicesPrice,
		res.TotalPrice,
		res.FinalPrice,
		res.Customer.FirstName,
		res.Customer.LastName,
		res.Customer.Email,
		res.Customer.Phone,
		nullString(res.Customer.FlightNumber),
		nullString(res.Customer.SpecialRequests),
		res.PaymentMethod,
		res.Status,
		res.VerificationToken,
		nullString(res.DriverID),
		nullFloat(res.DriverShare, res.Status == domain.ReservationStatusCompleted),
		nullFloat(res.CompanyShare, res.Status == domain.ReservationStatusCompleted),
		res.CreatedAt,
		nullTime(res.StartedAt),
		nullTime(res.CompletedAt),
		nullTime(res.CancelledAt),
		nullString(res.CancelReason),
	)

	return err
}

// GetByID retrieves a reservation by ID.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

// GetAll retrieves recent reservations, newest first.
func (r *ReservationRepository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// GetActiveByDriverID retrieves the assigned or started reservation for a
// driver. Returns nil if the driver has no active reservation.
func (r *ReservationRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE driver_id = $1 AND status IN ($2, $3)
		LIMIT 1
	`

	res, err := scanReservation(r.q.QueryRowContext(ctx, query, driverID,
		domain.ReservationStatusAssigned, domain.ReservationStatusStarted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return res, nil
}

// AssignDriver moves PENDING -> ASSIGNED and binds the driver.
func (r *ReservationRepository) AssignDriver(ctx context.Context, id, driverID string) error {
	query := `
		UPDATE reservations
		SET status = $1, driver_id = $2
		WHERE id = $3 AND status = $4
	`

	return r.execCAS(ctx, query,
		domain.ReservationStatusAssigned, driverID, id, domain.ReservationStatusPending)
}

// MarkStarted moves ASSIGNED -> STARTED.
func (r *ReservationRepository) MarkStarted(ctx context.Context, id string, startedAt time.Time) error {
	query := `
		UPDATE reservations
		SET status = $1, started_at = $2
		WHERE id = $3 AND status = $4
	`

	return r.execCAS(ctx, query,
		domain.ReservationStatusStarted, startedAt, id, domain.ReservationStatusAssigned)
}

// MarkCompleted moves STARTED -> COMPLETED and persists the settled shares.
func (r *ReservationRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time, driverShare, companyShare float64) error {
	query := `
		UPDATE reservations
		SET status = $1, completed_at = $2, driver_share = $3, company_share = $4
		WHERE id = $5 AND status = $6
	`

	return r.execCAS(ctx, query,
		domain.ReservationStatusCompleted, completedAt, driverShare, companyShare,
		id, domain.ReservationStatusStarted)
}

// MarkCancelled moves any non-terminal status -> CANCELLED.
func (r *ReservationRepository) MarkCancelled(ctx context.Context, id string, cancelledAt time.Time, reason string) error {
	query := `
		UPDATE reservations
		SET status = $1, cancelled_at = $2, cancel_reason = $3
		WHERE id = $4 AND status IN ($5, $6, $7)
	`

	return r.execCAS(ctx, query,
		domain.ReservationStatusCancelled, cancelledAt, reason, id,
		domain.ReservationStatusPending, domain.ReservationStatusAssigned, domain.ReservationStatusStarted)
}

// execCAS runs a guarded update; zero matched rows means the guard failed.
func (r *ReservationRepository) execCAS(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrStatusConflict
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReservation reads one reservation row.
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var serviceIDs pq.StringArray
	var flightNumber, specialRequests, driverID, cancelReason sql.NullString
	var driverShare, companyShare sql.NullFloat64
	var startedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Direction,
		&res.Origin,
		&res.Destination,
		&res.Date,
		&res.Time,
		&res.PassengerCount,
		&res.BaggageCount,
		&res.DistanceKm,
		&res.VehicleID,
		&serviceIDs,
		&res.BasePrice,
		&res.ServicesPrice,
		&res.TotalPrice,
		&res.FinalPrice,
		&res.Customer.FirstName,
		&res.Customer.LastName,
		&res.Customer.Email,
		&res.Customer.Phone,
		&flightNumber,
		&specialRequests,
		&res.PaymentMethod,
		&res.Status,
		&res.VerificationToken,
		&driverID,
		&driverShare,
		&companyShare,
		&res.CreatedAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&cancelReason,
	)
	if err != nil {
		return nil, err
	}

	res.ServiceIDs = []string(serviceIDs)
	res.Customer.FlightNumber = flightNumber.String
	res.Customer.SpecialRequests = specialRequests.String
	res.DriverID = driverID.String
	res.CancelReason = cancelReason.String

	if driverShare.Valid {
		res.DriverShare = driverShare.Float64
	}
	if companyShare.Valid {
		res.CompanyShare = companyShare.Float64
	}
	if startedAt.Valid {
		res.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		res.CompletedAt = completedAt.Time
	}
	if cancelledAt.Valid {
		res.CancelledAt = cancelledAt.Time
	}

	return &res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64, valid bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: valid}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// Ensure ReservationRepository implements repository.ReservationRepository.
var _ repository.ReservationRepository = (*ReservationRepository)(nil)
