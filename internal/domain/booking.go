package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Booking struct {
	ID            int64
	UserID        int64
	FlightID      int64
	Reference     string
	BookingTime   time.Time
	SeatsReserved []string
	PaymentStatus PaymentStatus
}

// BookingDetail is a booking joined with its flight and owner, the shape read paths return.
type BookingDetail struct {
	Booking  Booking
	Flight   Flight
	Username string
}
