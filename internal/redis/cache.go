package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"transfer/internal/domain"
)

// Catalog cache TTLs. Catalogs change rarely; a short TTL keeps admin edits
// visible without hammering Postgres on every booking step.
const (
	VehicleCatalogTTL = 60 * time.Second
	ServiceCatalogTTL = 60 * time.Second
)

const (
	vehicleCatalogKey = "catalog:vehicles"
	serviceCatalogKey = "catalog:services"
)

// CatalogCache caches the vehicle and add-on catalogs in Redis.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetVehicles retrieves the cached vehicle catalog. Returns nil on a miss.
func (c *CatalogCache) GetVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	data, err := c.client.Get(ctx, vehicleCatalogKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []*domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// SetVehicles caches the vehicle catalog.
func (c *CatalogCache) SetVehicles(ctx context.Context, vehicles []*domain.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, vehicleCatalogKey, data, VehicleCatalogTTL).Err()
}

// GetServices retrieves the cached add-on catalog. Returns nil on a miss.
func (c *CatalogCache) GetServices(ctx context.Context) ([]*domain.Service, error) {
	data, err := c.client.Get(ctx, serviceCatalogKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var services []*domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}

	return services, nil
}

// SetServices caches the add-on catalog.
func (c *CatalogCache) SetServices(ctx context.Context, services []*domain.Service) error {
	data, err := json.Marshal(services)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, serviceCatalogKey, data, ServiceCatalogTTL).Err()
}
