package redis

import (
	"context"
	"time"

	"transfer/internal/domain"
)

// DraftStoreInterface defines the interface for booking draft sessions.
type DraftStoreInterface interface {
	Save(ctx context.Context, draft *domain.ReservationDraft) error
	Get(ctx context.Context, id string) (*domain.ReservationDraft, error)
	Delete(ctx context.Context, id string) error
}

// LockStoreInterface defines the interface for driver assignment locks.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

// CatalogCacheInterface defines the interface for catalog caching.
type CatalogCacheInterface interface {
	GetVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []*domain.Vehicle) error
	GetServices(ctx context.Context) ([]*domain.Service, error)
	SetServices(ctx context.Context, services []*domain.Service) error
}

// Ensure concrete types implement interfaces.
var (
	_ DraftStoreInterface   = (*DraftStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ CatalogCacheInterface = (*CatalogCache)(nil)
)
