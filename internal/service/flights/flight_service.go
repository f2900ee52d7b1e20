package flights

import (
	"context"
	"fmt"
	"time"

	"flightbook/internal/domain"
	"flightbook/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Airports(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetAirports(ctx context.Context) ([]string, error)
	SetAirports(ctx context.Context, airports []string) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

type CreateFlightInput struct {
	FlightNumber     string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	PriceCents       int64
	AvailableSeats   *int
	TotalSeats       int
	Status           domain.FlightStatus
}

type UpdateFlightInput struct {
	FlightNumber     *string
	DepartureAirport *string
	ArrivalAirport   *string
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	PriceCents       *int64
	AvailableSeats   *int
	TotalSeats       *int
	Status           *domain.FlightStatus
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	return s.repo.Search(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Airports(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.Airports(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" {
		return nil, fmt.Errorf("%w: flight_number is required", domain.ErrInvalidInput)
	}
	if input.DepartureAirport == "" || input.ArrivalAirport == "" {
		return nil, fmt.Errorf("%w: departure_airport and arrival_airport are required", domain.ErrInvalidInput)
	}
	if input.DepartureTime.IsZero() || input.ArrivalTime.IsZero() {
		return nil, fmt.Errorf("%w: departure_time and arrival_time are required", domain.ErrInvalidInput)
	}
	if input.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	total := input.TotalSeats
	if total == 0 {
		total = domain.DefaultTotalSeats
	}
	if total < 1 {
		return nil, fmt.Errorf("%w: total_seats must be positive", domain.ErrInvalidInput)
	}

	available := total
	if input.AvailableSeats != nil {
		available = *input.AvailableSeats
	}
	if available < 0 || available > total {
		return nil, fmt.Errorf("%w: available_seats must be between 0 and total_seats", domain.ErrInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = domain.FlightStatusOnTime
	}
	if !domain.ValidFlightStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	flight := &domain.Flight{
		FlightNumber:     input.FlightNumber,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureTime:    input.DepartureTime,
		ArrivalTime:      input.ArrivalTime,
		PriceCents:       input.PriceCents,
		AvailableSeats:   available,
		TotalSeats:       total,
		Status:           status,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FlightNumber != nil {
		flight.FlightNumber = *input.FlightNumber
	}
	if input.DepartureAirport != nil {
		flight.DepartureAirport = *input.DepartureAirport
	}
	if input.ArrivalAirport != nil {
		flight.ArrivalAirport = *input.ArrivalAirport
	}
	if input.DepartureTime != nil {
		flight.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		flight.ArrivalTime = *input.ArrivalTime
	}
	if input.PriceCents != nil {
		flight.PriceCents = *input.PriceCents
	}
	if input.TotalSeats != nil {
		flight.TotalSeats = *input.TotalSeats
	}
	if input.AvailableSeats != nil {
		flight.AvailableSeats = *input.AvailableSeats
	}
	if input.Status != nil {
		flight.Status = *input.Status
	}

	if flight.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if flight.TotalSeats < 1 {
		return nil, fmt.Errorf("%w: total_seats must be positive", domain.ErrInvalidInput)
	}
	if flight.AvailableSeats < 0 || flight.AvailableSeats > flight.TotalSeats {
		return nil, fmt.Errorf("%w: available_seats must be between 0 and total_seats", domain.ErrInvalidInput)
	}
	if !domain.ValidFlightStatus(flight.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, flight.Status)
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
