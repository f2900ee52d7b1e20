package api

import (
	"net/http"
	"strconv"

	"flightbook/internal/repository"
	"flightbook/internal/service/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	users   repository.UserRepository
}

type createBookingRequest struct {
	FlightID      int64    `json:"flight_id"`
	SeatsReserved []string `json:"seats_reserved"`
}

func NewBookingHandler(service booking.BookingUseCase, users repository.UserRepository) *BookingHandler {
	return &BookingHandler{service: service, users: users}
}

func (h *BookingHandler) Register(authed *gin.RouterGroup) {
	authed.POST("/bookings/", h.create)
	authed.GET("/bookings/my-trips/", h.myTrips)
	authed.GET("/bookings/:id/", h.get)
	authed.GET("/flights/:id/occupied-seats/", h.occupiedSeats)
}

func (h *BookingHandler) create(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	detail, err := h.service.CreateBooking(c.Request.Context(), user, booking.CreateBookingInput{
		FlightID:      req.FlightID,
		SeatsReserved: req.SeatsReserved,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(*detail))
}

func (h *BookingHandler) myTrips(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	details, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toBookingResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := h.service.GetBooking(c.Request.Context(), id, userID, claims.IsAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*detail))
}

func (h *BookingHandler) occupiedSeats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	seats, err := h.service.OccupiedSeats(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}
