package domain

// VehicleType represents the class of a transfer vehicle.
type VehicleType string

const (
	VehicleTypeSedan  VehicleType = "SEDAN"
	VehicleTypeSUV    VehicleType = "SUV"
	VehicleTypeVan    VehicleType = "VAN"
	VehicleTypeLuxury VehicleType = "LUXURY"
)

// Vehicle represents a fleet vehicle offered at the vehicle selection step.
type Vehicle struct {
	ID              string
	Name            string
	Type            VehicleType
	SeatCapacity    int
	BaggageCapacity int
	PricePerKm      float64
	Active          bool
}

// VehicleTypeBounds holds the sanity bounds for a vehicle type. Catalog data
// outside these bounds is treated as corrupt by the fare calculator.
type VehicleTypeBounds struct {
	MaxSeats      int
	MaxBaggage    int
	MinPricePerKm float64
	MaxPricePerKm float64
}

// BoundsForType returns the sanity bounds for the given vehicle type.
// Unknown types get the widest bounds.
func BoundsForType(t VehicleType) VehicleTypeBounds {
	switch t {
	case VehicleTypeSedan:
		return VehicleTypeBounds{MaxSeats: 4, MaxBaggage: 3, MinPricePerKm: 0.5, MaxPricePerKm: 50}
	case VehicleTypeSUV:
		return VehicleTypeBounds{MaxSeats: 6, MaxBaggage: 5, MinPricePerKm: 0.5, MaxPricePerKm: 80}
	case VehicleTypeVan:
		return VehicleTypeBounds{MaxSeats: 12, MaxBaggage: 14, MinPricePerKm: 0.5, MaxPricePerKm: 100}
	case VehicleTypeLuxury:
		return VehicleTypeBounds{MaxSeats: 4, MaxBaggage: 3, MinPricePerKm: 1, MaxPricePerKm: 200}
	default:
		return VehicleTypeBounds{MaxSeats: 12, MaxBaggage: 14, MinPricePerKm: 0.1, MaxPricePerKm: 200}
	}
}
