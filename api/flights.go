package api

import (
	"net/http"
	"strconv"
	"time"

	"flightbook/internal/repository"
	"flightbook/internal/service/flights"

	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(public, authed *gin.RouterGroup) {
	public.GET("/all-flights/", h.listAll)
	public.GET("/airports/", h.airports)
	authed.GET("/flights/search/", h.search)
	authed.GET("/flights/:id/", h.get)
}

func (h *FlightHandler) listAll(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) airports(c *gin.Context) {
	airports, err := h.service.Airports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter, err := parseFlightFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

// parseFlightFilter rejects malformed values rather than ignoring them, so a
// bad max_price cannot silently widen the result set.
func parseFlightFilter(c *gin.Context) (repository.FlightFilter, error) {
	var filter repository.FlightFilter
	filter.DepartureAirport = c.Query("departure_airport")
	filter.ArrivalAirport = c.Query("arrival_airport")

	dates := []struct {
		name string
		dst  **time.Time
	}{
		{"departure_date", &filter.DepartureDate},
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	}
	for _, d := range dates {
		raw := c.Query(d.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return repository.FlightFilter{}, &paramError{d.name}
		}
		*d.dst = &t
	}

	prices := []struct {
		name string
		dst  **int64
	}{
		{"min_price", &filter.MinPriceCents},
		{"max_price", &filter.MaxPriceCents},
	}
	for _, p := range prices {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.FlightFilter{}, &paramError{p.name}
		}
		cents := priceToCents(v)
		*p.dst = &cents
	}

	return filter, nil
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "invalid " + e.name
}
