package service

import (
	"context"

	"github.com/google/uuid"

	"transfer/internal/domain"
	"transfer/internal/repository"
)

// DriverService handles the fleet driver registry.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// RegisterDriverRequest contains the parameters for registering a driver.
type RegisterDriverRequest struct {
	Name  string
	Phone string
}

// Register adds a new driver to the fleet as AVAILABLE.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if len(req.Name) < 2 {
		return nil, ErrInvalidDriverName
	}

	if !validPhone(req.Phone) {
		return nil, ErrInvalidDriverPhone
	}

	driver := &domain.Driver{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Phone:  req.Phone,
		Status: domain.DriverStatusAvailable,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// GetAll retrieves all drivers.
func (s *DriverService) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}
