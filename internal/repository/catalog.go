package repository

import (
	"context"

	"transfer/internal/domain"
)

// VehicleRepository defines the persistence operations for the vehicle catalog.
type VehicleRepository interface {
	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// ListActive retrieves all active vehicles.
	ListActive(ctx context.Context) ([]*domain.Vehicle, error)
}

// ServiceRepository defines the persistence operations for the add-on catalog.
type ServiceRepository interface {
	// ListActive retrieves all active add-on services.
	ListActive(ctx context.Context) ([]*domain.Service, error)
}
