package tests

import (
	"context"
	"errors"
	"testing"

	"transfer/internal/domain"
	"transfer/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER REGISTRY
// ──────────────────────────────────────────────

func TestDriverRegister_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	drivers := service.NewDriverService(driverRepo)

	driver, err := drivers.Register(context.Background(), service.RegisterDriverRequest{
		Name:  "Mehmet Kaya",
		Phone: "+90 555 123 45 67",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if driver.ID == "" {
		t.Error("expected a driver id")
	}
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("expected AVAILABLE, got %s", driver.Status)
	}

	if driverRepo.CreateCallCount != 1 {
		t.Errorf("expected one create call, got %d", driverRepo.CreateCallCount)
	}
}

func TestDriverRegister_ShortName_Rejected(t *testing.T) {
	t.Parallel()

	drivers := service.NewDriverService(NewMockDriverRepository())

	_, err := drivers.Register(context.Background(), service.RegisterDriverRequest{
		Name:  "M",
		Phone: "+90 555 123 45 67",
	})
	if !errors.Is(err, service.ErrInvalidDriverName) {
		t.Errorf("expected ErrInvalidDriverName, got %v", err)
	}
}

func TestDriverRegister_ShortPhone_Rejected(t *testing.T) {
	t.Parallel()

	drivers := service.NewDriverService(NewMockDriverRepository())

	_, err := drivers.Register(context.Background(), service.RegisterDriverRequest{
		Name:  "Mehmet Kaya",
		Phone: "12345",
	})
	if !errors.Is(err, service.ErrInvalidDriverPhone) {
		t.Errorf("expected ErrInvalidDriverPhone, got %v", err)
	}
}
