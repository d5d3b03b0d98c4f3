package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transfer/internal/domain"
	"transfer/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, seat_capacity, baggage_capacity, price_per_km, active
		FROM vehicles WHERE id = $1
	`

	var v domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.Name,
		&v.Type,
		&v.SeatCapacity,
		&v.BaggageCapacity,
		&v.PricePerKm,
		&v.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &v, nil
}

// ListActive retrieves all active vehicles.
func (r *VehicleRepository) ListActive(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, seat_capacity, baggage_capacity, price_per_km, active
		FROM vehicles WHERE active = true ORDER BY price_per_km
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Type,
			&v.SeatCapacity,
			&v.BaggageCapacity,
			&v.PricePerKm,
			&v.Active,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}

	return vehicles, rows.Err()
}

// ServiceRepository is a PostgreSQL implementation of repository.ServiceRepository.
type ServiceRepository struct {
	q Querier
}

// NewServiceRepository creates a new PostgreSQL add-on service repository.
func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{q: db}
}

// ListActive retrieves all active add-on services.
func (r *ServiceRepository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	query := `
		SELECT id, name, price, category, active
		FROM services WHERE active = true ORDER BY category, price
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Category, &s.Active); err != nil {
			return nil, err
		}
		services = append(services, &s)
	}

	return services, rows.Err()
}

// Ensure interfaces are satisfied.
var (
	_ repository.VehicleRepository = (*VehicleRepository)(nil)
	_ repository.ServiceRepository = (*ServiceRepository)(nil)
)
