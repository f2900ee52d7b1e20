package api

import (
	"net/http"

	"flightbook/internal/auth"
	"flightbook/internal/repository"
	"flightbook/internal/service/booking"
	"flightbook/internal/service/flights"
	"flightbook/internal/service/users"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// SetupRouter wires every route with its capability gate.
func SetupRouter(
	log zerolog.Logger,
	tokens *auth.TokenManager,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	userSvc users.UserUseCase,
	userRepo repository.UserRepository,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	public := apiGroup.Group("", Require(CapabilityPublic, tokens))
	authed := apiGroup.Group("", Require(CapabilityAuthenticated, tokens))
	admin := apiGroup.Group("/admin", Require(CapabilityAdmin, tokens))

	NewAuthHandler(userSvc).Register(public)
	NewFlightHandler(flightSvc).Register(public, authed)
	NewBookingHandler(bookingSvc, userRepo).Register(authed)
	NewAdminHandler(flightSvc, userSvc).Register(admin)

	return router
}
