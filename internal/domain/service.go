package domain

// Service represents a flat-priced add-on selectable during booking
// (child seat, meet-and-greet, extra stop). Each id is selectable at most
// once per reservation.
type Service struct {
	ID       string
	Name     string
	Price    float64
	Category string
	Active   bool
}
