package service

import (
	"errors"
	"testing"

	"transfer/internal/domain"
)

func sedan(pricePerKm float64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:              "veh-1",
		Name:            "Sedan",
		Type:            domain.VehicleTypeSedan,
		SeatCapacity:    4,
		BaggageCapacity: 3,
		PricePerKm:      pricePerKm,
		Active:          true,
	}
}

func TestComputeBasePrice_DistanceTimesRate(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	price, err := fare.ComputeBasePrice(sedan(12), 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if price != 300 {
		t.Errorf("expected base price 300, got %v", price)
	}
}

func TestComputeBasePrice_RoundsToCents(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	// 1.1 * 3 = 3.3000000000000003 in float64.
	price, err := fare.ComputeBasePrice(sedan(1.1), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if price != 3.3 {
		t.Errorf("expected base price 3.3, got %v", price)
	}
}

func TestComputeBasePrice_InactiveVehicle_Rejected(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	vehicle := sedan(12)
	vehicle.Active = false

	_, err := fare.ComputeBasePrice(vehicle, 25)
	if !errors.Is(err, ErrVehicleInactive) {
		t.Errorf("expected ErrVehicleInactive, got %v", err)
	}
}

func TestComputeBasePrice_NonPositiveDistance_Rejected(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	for _, distance := range []float64{0, -5} {
		if _, err := fare.ComputeBasePrice(sedan(12), distance); !errors.Is(err, ErrInvalidDistance) {
			t.Errorf("distance %v: expected ErrInvalidDistance, got %v", distance, err)
		}
	}
}

func TestComputeBasePrice_RateOutsideTypeBounds_Rejected(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	// A sedan priced like a private jet is corrupt catalog data.
	if _, err := fare.ComputeBasePrice(sedan(500), 10); !errors.Is(err, ErrInvalidPricePerKm) {
		t.Errorf("expected ErrInvalidPricePerKm, got %v", err)
	}

	if _, err := fare.ComputeBasePrice(sedan(0.01), 10); !errors.Is(err, ErrInvalidPricePerKm) {
		t.Errorf("expected ErrInvalidPricePerKm for rate below bounds, got %v", err)
	}
}

func TestComputeServicesPrice_SumsSelection(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()
	catalog := map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Child Seat", Price: 50, Active: true},
		"svc-2": {ID: "svc-2", Name: "Meet & Greet", Price: 30, Active: true},
	}

	price, err := fare.ComputeServicesPrice([]string{"svc-1", "svc-2"}, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if price != 80 {
		t.Errorf("expected services price 80, got %v", price)
	}
}

func TestComputeServicesPrice_EmptySelection_IsZero(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	price, err := fare.ComputeServicesPrice(nil, map[string]*domain.Service{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if price != 0 {
		t.Errorf("expected services price 0, got %v", price)
	}
}

func TestComputeServicesPrice_UnknownID_FailsClosed(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()
	catalog := map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Price: 50, Active: true},
	}

	_, err := fare.ComputeServicesPrice([]string{"svc-1", "svc-ghost"}, catalog)
	if !errors.Is(err, ErrUnknownService) {
		t.Errorf("expected ErrUnknownService, got %v", err)
	}
}

func TestComputeServicesPrice_InactiveService_FailsClosed(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()
	catalog := map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Price: 50, Active: false},
	}

	_, err := fare.ComputeServicesPrice([]string{"svc-1"}, catalog)
	if !errors.Is(err, ErrUnknownService) {
		t.Errorf("expected ErrUnknownService, got %v", err)
	}
}

func TestComputeTotal_AppliesDiscount(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	total, err := fare.ComputeTotal(300, 80, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 361 {
		t.Errorf("expected total 361, got %v", total)
	}
}

func TestComputeTotal_ZeroDiscount_IsSum(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	total, err := fare.ComputeTotal(300, 80, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 380 {
		t.Errorf("expected total 380, got %v", total)
	}
}

func TestComputeTotal_DiscountOutOfRange_Rejected(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	for _, discount := range []float64{-1, 100, 150} {
		if _, err := fare.ComputeTotal(100, 0, discount); !errors.Is(err, ErrInvalidDiscount) {
			t.Errorf("discount %v: expected ErrInvalidDiscount, got %v", discount, err)
		}
	}
}

func TestComputeTotal_RoundsHalfUp(t *testing.T) {
	t.Parallel()

	fare := NewFareCalculator()

	// 100.005 rounds up to 100.01, not down.
	total, err := fare.ComputeTotal(100.005, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 100.01 {
		t.Errorf("expected total 100.01, got %v", total)
	}
}
