package domain

// DriverStatus represents the current availability of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusInactive  DriverStatus = "INACTIVE"
)

// Driver represents a driver in the fleet.
type Driver struct {
	ID     string
	Name   string
	Phone  string
	Status DriverStatus
}
