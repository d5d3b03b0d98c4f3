package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"transfer/internal/domain"
	"transfer/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RESERVATION REPOSITORY
// ──────────────────────────────────────────────

// MockReservationRepository is a mock implementation of ReservationRepository.
// Status-changing methods honor the compare-and-swap contract: they apply only
// when the stored status still permits the transition and return
// ErrStatusConflict otherwise.
type MockReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation

	// Counters for verification
	CreateCallCount        int32
	AssignDriverCallCount  int32
	MarkCompletedCallCount int32

	// Error injection
	CreateError       error
	AssignDriverError error
}

// NewMockReservationRepository creates a new mock reservation repository.
func NewMockReservationRepository() *MockReservationRepository {
	return &MockReservationRepository{
		reservations: make(map[string]*domain.Reservation),
	}
}

// AddReservation seeds a reservation into the mock repository.
func (m *MockReservationRepository) AddReservation(reservation *domain.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[reservation.ID] = reservation
}

// GetReservation returns the stored reservation for test assertions.
func (m *MockReservationRepository) GetReservation(id string) *domain.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reservations[id]
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *reservation
	m.reservations[reservation.ID] = &copy
	return nil
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *reservation
	return &copy, nil
}

func (m *MockReservationRepository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockReservationRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reservations {
		if r.DriverID != driverID {
			continue
		}
		if r.Status == domain.ReservationStatusAssigned || r.Status == domain.ReservationStatusStarted {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockReservationRepository) AssignDriver(ctx context.Context, id, driverID string) error {
	atomic.AddInt32(&m.AssignDriverCallCount, 1)
	if m.AssignDriverError != nil {
		return m.AssignDriverError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reservation.Status != domain.ReservationStatusPending {
		return repository.ErrStatusConflict
	}
	reservation.Status = domain.ReservationStatusAssigned
	reservation.DriverID = driverID
	return nil
}

func (m *MockReservationRepository) MarkStarted(ctx context.Context, id string, startedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reservation.Status != domain.ReservationStatusAssigned {
		return repository.ErrStatusConflict
	}
	reservation.Status = domain.ReservationStatusStarted
	reservation.StartedAt = startedAt
	return nil
}

func (m *MockReservationRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time, driverShare, companyShare float64) error {
	atomic.AddInt32(&m.MarkCompletedCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reservation.Status != domain.ReservationStatusStarted {
		return repository.ErrStatusConflict
	}
	reservation.Status = domain.ReservationStatusCompleted
	reservation.CompletedAt = completedAt
	reservation.DriverShare = driverShare
	reservation.CompanyShare = companyShare
	return nil
}

func (m *MockReservationRepository) MarkCancelled(ctx context.Context, id string, cancelledAt time.Time, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reservation, ok := m.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reservation.Status.IsTerminal() {
		return repository.ErrStatusConflict
	}
	reservation.Status = domain.ReservationStatusCancelled
	reservation.CancelledAt = cancelledAt
	reservation.CancelReason = reason
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver seeds a driver into the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

// GetDriver returns the stored driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORIES
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle seeds a vehicle into the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) ListActive(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		if !v.Active {
			continue
		}
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

// MockServiceRepository is a mock implementation of ServiceRepository.
type MockServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service
}

// NewMockServiceRepository creates a new mock add-on service repository.
func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{
		services: make(map[string]*domain.Service),
	}
}

// AddService seeds an add-on service into the mock repository.
func (m *MockServiceRepository) AddService(service *domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[service.ID] = service
}

func (m *MockServiceRepository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Service, 0, len(m.services))
	for _, s := range m.services {
		if !s.Active {
			continue
		}
		copy := *s
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT SETTINGS REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentSettingsRepository is a mock implementation of PaymentSettingsRepository.
type MockPaymentSettingsRepository struct {
	mu       sync.RWMutex
	settings domain.PaymentSettings

	// Error injection
	GetError error
}

// NewMockPaymentSettingsRepository creates a mock settings repository with the
// given settings.
func NewMockPaymentSettingsRepository(settings domain.PaymentSettings) *MockPaymentSettingsRepository {
	return &MockPaymentSettingsRepository{settings: settings}
}

// SetSettings replaces the stored settings, simulating an admin change.
func (m *MockPaymentSettingsRepository) SetSettings(settings domain.PaymentSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
}

func (m *MockPaymentSettingsRepository) Get(ctx context.Context) (*domain.PaymentSettings, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	copy := m.settings
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK DRAFT STORE
// ──────────────────────────────────────────────

// MockDraftStore is an in-memory mock of the Redis draft session store.
type MockDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*domain.ReservationDraft

	// Counters for verification
	SaveCallCount   int32
	DeleteCallCount int32

	// Error injection
	SaveError error
	GetError  error
}

// NewMockDraftStore creates a new mock draft store.
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{
		drafts: make(map[string]*domain.ReservationDraft),
	}
}

func (m *MockDraftStore) Save(ctx context.Context, draft *domain.ReservationDraft) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *draft
	copy.ServiceIDs = append([]string(nil), draft.ServiceIDs...)
	m.drafts[draft.ID] = &copy
	return nil
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (*domain.ReservationDraft, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	draft, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	copy := *draft
	copy.ServiceIDs = append([]string(nil), draft.ServiceIDs...)
	return &copy, nil
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory mock of the Redis driver assignment lock.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[driverID] {
		return false, nil
	}
	m.locks[driverID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, driverID)
	return nil
}
