package api

import (
	"net/http"
	"strconv"
	"time"

	"flightbook/internal/domain"
	"flightbook/internal/service/flights"
	"flightbook/internal/service/users"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	flights flights.FlightUseCase
	users   users.UserUseCase
}

type createFlightRequest struct {
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Price            float64   `json:"price"`
	AvailableSeats   *int      `json:"available_seats"`
	TotalSeats       int       `json:"total_seats"`
	Status           string    `json:"status"`
}

type updateFlightRequest struct {
	FlightNumber     *string    `json:"flight_number"`
	DepartureAirport *string    `json:"departure_airport"`
	ArrivalAirport   *string    `json:"arrival_airport"`
	DepartureTime    *time.Time `json:"departure_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	Price            *float64   `json:"price"`
	AvailableSeats   *int       `json:"available_seats"`
	TotalSeats       *int       `json:"total_seats"`
	Status           *string    `json:"status"`
}

func NewAdminHandler(flightSvc flights.FlightUseCase, userSvc users.UserUseCase) *AdminHandler {
	return &AdminHandler{flights: flightSvc, users: userSvc}
}

func (h *AdminHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/flights/", h.listFlights)
	admin.POST("/flights/", h.createFlight)
	admin.PATCH("/flights/:id/status/", h.updateFlight)
	admin.GET("/users/pending/", h.pendingUsers)
	admin.PATCH("/users/:id/approve/", h.approveUser)
}

func (h *AdminHandler) listFlights(c *gin.Context) {
	list, err := h.flights.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *AdminHandler) createFlight(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.flights.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:     req.FlightNumber,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		PriceCents:       priceToCents(req.Price),
		AvailableSeats:   req.AvailableSeats,
		TotalSeats:       req.TotalSeats,
		Status:           domain.FlightStatus(req.Status),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(*flight))
}

func (h *AdminHandler) updateFlight(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := flights.UpdateFlightInput{
		FlightNumber:     req.FlightNumber,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		AvailableSeats:   req.AvailableSeats,
		TotalSeats:       req.TotalSeats,
	}
	if req.Price != nil {
		cents := priceToCents(*req.Price)
		input.PriceCents = &cents
	}
	if req.Status != nil {
		status := domain.FlightStatus(*req.Status)
		input.Status = &status
	}

	flight, err := h.flights.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *AdminHandler) pendingUsers(c *gin.Context) {
	pending, err := h.users.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]userResponse, 0, len(pending))
	for _, u := range pending {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) approveUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	user, err := h.users.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}
