package service

import (
	"math"

	"transfer/internal/domain"
)

// FareCalculator computes transfer prices. All methods are pure functions of
// their inputs; prices must be recomputed whenever the vehicle, distance,
// service selection or payment method changes.
type FareCalculator struct{}

// NewFareCalculator creates a new FareCalculator.
func NewFareCalculator() *FareCalculator {
	return &FareCalculator{}
}

// ComputeBasePrice returns pricePerKm * distanceKm rounded to cents.
// The vehicle must be active and its per-km rate must fall inside the sanity
// bounds for its type.
func (f *FareCalculator) ComputeBasePrice(vehicle *domain.Vehicle, distanceKm float64) (float64, error) {
	if vehicle == nil || !vehicle.Active {
		return 0, ErrVehicleInactive
	}

	if distanceKm <= 0 {
		return 0, ErrInvalidDistance
	}

	bounds := domain.BoundsForType(vehicle.Type)
	if vehicle.PricePerKm < bounds.MinPricePerKm || vehicle.PricePerKm > bounds.MaxPricePerKm {
		return 0, ErrInvalidPricePerKm
	}

	return roundCents(vehicle.PricePerKm * distanceKm), nil
}

// ComputeServicesPrice sums the prices of the selected add-ons. Every id must
// reference an active service in the catalog; unknown or inactive ids fail
// with ErrUnknownService rather than being dropped.
func (f *FareCalculator) ComputeServicesPrice(selectedIDs []string, catalog map[string]*domain.Service) (float64, error) {
	var sum float64
	for _, id := range selectedIDs {
		svc, ok := catalog[id]
		if !ok || !svc.Active {
			return 0, ErrUnknownService
		}
		sum += svc.Price
	}
	return roundCents(sum), nil
}

// ComputeTotal applies a percent discount to base + services and rounds to
// cents. The discount must be in [0,100).
func (f *FareCalculator) ComputeTotal(basePrice, servicesPrice, discountPercent float64) (float64, error) {
	if discountPercent < 0 || discountPercent >= 100 {
		return 0, ErrInvalidDiscount
	}

	total := basePrice + servicesPrice
	return roundCents(total * (1 - discountPercent/100)), nil
}

// roundCents rounds to two decimals using round-half-up.
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
