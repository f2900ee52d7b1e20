package domain

import "time"

type FlightStatus string

const (
	FlightStatusOnTime    FlightStatus = "on_time"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

// DefaultTotalSeats is applied when a flight is created without an explicit capacity.
const DefaultTotalSeats = 150

type Flight struct {
	ID               int64
	FlightNumber     string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	PriceCents       int64
	AvailableSeats   int
	TotalSeats       int
	Status           FlightStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ValidFlightStatus(s FlightStatus) bool {
	switch s {
	case FlightStatusOnTime, FlightStatusDelayed, FlightStatusCancelled:
		return true
	}
	return false
}
