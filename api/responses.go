package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"flightbook/internal/auth"
	"flightbook/internal/domain"

	"github.com/gin-gonic/gin"
)

type flightResponse struct {
	ID               int64     `json:"id"`
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Price            string    `json:"price"`
	AvailableSeats   int       `json:"available_seats"`
	TotalSeats       int       `json:"total_seats"`
	Status           string    `json:"status"`
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:               f.ID,
		FlightNumber:     f.FlightNumber,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Price:            priceString(f.PriceCents),
		AvailableSeats:   f.AvailableSeats,
		TotalSeats:       f.TotalSeats,
		Status:           string(f.Status),
	}
}

func toFlightResponses(flights []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(flights))
	for _, f := range flights {
		out = append(out, toFlightResponse(f))
	}
	return out
}

type bookingResponse struct {
	ID            int64          `json:"id"`
	User          string         `json:"user"`
	Flight        flightResponse `json:"flight"`
	Reference     string         `json:"reference"`
	BookingTime   time.Time      `json:"booking_time"`
	SeatsReserved []string       `json:"seats_reserved"`
	PaymentStatus string         `json:"payment_status"`
}

func toBookingResponse(d domain.BookingDetail) bookingResponse {
	seats := d.Booking.SeatsReserved
	if seats == nil {
		seats = []string{}
	}
	return bookingResponse{
		ID:            d.Booking.ID,
		User:          d.Username,
		Flight:        toFlightResponse(d.Flight),
		Reference:     d.Booking.Reference,
		BookingTime:   d.Booking.BookingTime,
		SeatsReserved: seats,
		PaymentStatus: string(d.Booking.PaymentStatus),
	}
}

type userResponse struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ApprovalStatus string `json:"approval_status"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, ApprovalStatus: string(u.ApprovalStatus)}
}

func priceString(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func priceToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

const capacityErrorMessage = "Not enough available seats on this flight."

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotEnoughSeats):
		c.JSON(http.StatusBadRequest, gin.H{"error": capacityErrorMessage})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
