package service

import (
	"context"

	"transfer/internal/domain"
	"transfer/internal/redis"
	"transfer/internal/repository"
)

// CatalogService serves the vehicle and add-on catalogs, reading through the
// Redis cache in front of Postgres.
type CatalogService struct {
	vehicleRepo repository.VehicleRepository
	serviceRepo repository.ServiceRepository
	cache       redis.CatalogCacheInterface
}

// NewCatalogService creates a new CatalogService. The cache may be nil.
func NewCatalogService(
	vehicleRepo repository.VehicleRepository,
	serviceRepo repository.ServiceRepository,
	cache redis.CatalogCacheInterface,
) *CatalogService {
	return &CatalogService{
		vehicleRepo: vehicleRepo,
		serviceRepo: serviceRepo,
		cache:       cache,
	}
}

// ListVehicles returns the active vehicle catalog.
func (s *CatalogService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	if s.cache != nil {
		cached, err := s.cache.GetVehicles(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.vehicleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetVehicles(ctx, vehicles)
	}

	return vehicles, nil
}

// GetVehicle returns a single vehicle, preferring the cached catalog.
func (s *CatalogService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if s.cache != nil {
		cached, err := s.cache.GetVehicles(ctx)
		if err == nil {
			for _, v := range cached {
				if v.ID == id {
					return v, nil
				}
			}
		}
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

// ListServices returns the active add-on catalog.
func (s *CatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	if s.cache != nil {
		cached, err := s.cache.GetServices(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetServices(ctx, services)
	}

	return services, nil
}

// ServiceMap returns the active add-on catalog keyed by id, as consumed by
// the fare calculator.
func (s *CatalogService) ServiceMap(ctx context.Context) (map[string]*domain.Service, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]*domain.Service, len(services))
	for _, svc := range services {
		m[svc.ID] = svc
	}

	return m, nil
}
