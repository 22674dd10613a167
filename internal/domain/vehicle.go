package domain

type AvailabilityStatus string

const (
	StatusAvailable        AvailabilityStatus = "Available"
	StatusRented           AvailabilityStatus = "Rented"
	StatusUnderMaintenance AvailabilityStatus = "Under Maintenance"
)

// Valid reports whether s is one of the three availability states the
// backend recognizes.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusUnderMaintenance:
		return true
	}
	return false
}

type Vehicle struct {
	ID                 int                `json:"vehicle_id"`
	Brand              string             `json:"brand"`
	Model              string             `json:"model"`
	Year               int                `json:"year"`
	RentPrice          float64            `json:"rent_price"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	ImageURL           string             `json:"car_url"`
}
