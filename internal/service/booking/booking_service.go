package booking

import (
	"context"
	"errors"
	"sort"

	"flightbook/internal/domain"
	"flightbook/internal/kafka"
	"flightbook/internal/metrics"
	"flightbook/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.BookingDetail, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	GetBooking(ctx context.Context, id, requesterID int64, requesterAdmin bool) (*domain.BookingDetail, error)
	OccupiedSeats(ctx context.Context, flightID int64) ([]string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	notificationsTopic string
	log                zerolog.Logger
}

type CreateBookingInput struct {
	FlightID      int64    `json:"flight_id"`
	SeatsReserved []string `json:"seats_reserved"`
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	notificationsTopic string,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:           bookings,
		flights:            flights,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		log:                log.With().Str("component", "booking").Logger(),
	}
}

// CreateBooking reserves the requested seats and records the booking. The
// decrement happens inside the repository transaction, so capacity can never
// be oversold however many requests race. The confirmation event is published
// only after the booking is committed; a publish failure is logged and does
// not fail the booking.
func (s *BookingService) CreateBooking(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.BookingDetail, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:        user.ID,
		FlightID:      flight.ID,
		Reference:     uuid.NewString(),
		SeatsReserved: input.SeatsReserved,
		PaymentStatus: domain.PaymentStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrNotEnoughSeats) {
			metrics.BookingsRejected.Inc()
		}
		return nil, err
	}
	metrics.BookingsCreated.Inc()
	flight.AvailableSeats -= len(booking.SeatsReserved)

	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.NotificationEvent{
			Type:             kafka.EventBookingConfirmed,
			Reference:        booking.Reference,
			Username:         user.Username,
			Email:            user.Email,
			FlightNumber:     flight.FlightNumber,
			DepartureAirport: flight.DepartureAirport,
			ArrivalAirport:   flight.ArrivalAirport,
			DepartureTime:    flight.DepartureTime,
			Seats:            booking.SeatsReserved,
		}
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			s.log.Warn().Err(err).Str("reference", booking.Reference).Msg("failed to publish booking confirmation")
		} else {
			metrics.NotificationsPublished.Inc()
		}
	}

	return &domain.BookingDetail{Booking: *booking, Flight: *flight, Username: user.Username}, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// GetBooking is restricted to the booking's owner; admins can read any booking.
func (s *BookingService) GetBooking(ctx context.Context, id, requesterID int64, requesterAdmin bool) (*domain.BookingDetail, error) {
	detail, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Booking.UserID != requesterID && !requesterAdmin {
		return nil, domain.ErrForbidden
	}
	return detail, nil
}

// OccupiedSeats returns the deduplicated union of reserved seats across all
// bookings for the flight, regardless of payment status.
func (s *BookingService) OccupiedSeats(ctx context.Context, flightID int64) ([]string, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}

	all, err := s.bookings.SeatsForFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]string, 0, len(all))
	for _, seat := range all {
		if _, ok := seen[seat]; ok {
			continue
		}
		seen[seat] = struct{}{}
		unique = append(unique, seat)
	}
	sort.Strings(unique)
	return unique, nil
}

var _ BookingUseCase = (*BookingService)(nil)
