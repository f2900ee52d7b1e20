package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"flightbook/internal/domain"
	"flightbook/internal/kafka"
	"flightbook/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) SeatsForFlight(ctx context.Context, flightID int64) ([]string, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]string), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Airports(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(bookings repository.BookingRepository, flights repository.FlightRepository, producer Producer) *BookingService {
	return NewBookingService(bookings, flights, producer, "notifications", zerolog.Nop())
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	svc := newTestService(mockBookingRepo, mockFlightRepo, mockProducer)

	flight := &domain.Flight{
		ID:               1,
		FlightNumber:     "FB100",
		DepartureAirport: "JFK",
		ArrivalAirport:   "LAX",
		AvailableSeats:   5,
		TotalSeats:       150,
	}
	user := &domain.User{ID: 7, Username: "bob", Email: "bob@example.com"}

	mockFlightRepo.On("GetByID", mock.Anything, int64(1)).Return(flight, nil)
	mockBookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = 42
		}).
		Return(nil)
	mockProducer.On("Publish", mock.Anything, "notifications", mock.AnythingOfType("string"), mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.NotificationEvent)
		return ok &&
			event.Type == kafka.EventBookingConfirmed &&
			event.Email == "bob@example.com" &&
			event.Username == "bob" &&
			event.FlightNumber == "FB100" &&
			assert.ObjectsAreEqual([]string{"1A", "1B"}, event.Seats)
	})).Return(nil)

	detail, err := svc.CreateBooking(context.Background(), user, CreateBookingInput{
		FlightID:      1,
		SeatsReserved: []string{"1A", "1B"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), detail.Booking.ID)
	assert.Equal(t, []string{"1A", "1B"}, detail.Booking.SeatsReserved)
	assert.Equal(t, domain.PaymentStatusPending, detail.Booking.PaymentStatus)
	assert.NotEmpty(t, detail.Booking.Reference)
	assert.Equal(t, 3, detail.Flight.AvailableSeats)

	mockProducer.AssertNumberOfCalls(t, "Publish", 1)
	mockBookingRepo.AssertExpectations(t)
	mockFlightRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_NotEnoughSeats(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	svc := newTestService(mockBookingRepo, mockFlightRepo, mockProducer)

	flight := &domain.Flight{ID: 1, AvailableSeats: 1, TotalSeats: 150}
	user := &domain.User{ID: 7, Username: "bob", Email: "bob@example.com"}

	mockFlightRepo.On("GetByID", mock.Anything, int64(1)).Return(flight, nil)
	mockBookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(domain.ErrNotEnoughSeats)

	detail, err := svc.CreateBooking(context.Background(), user, CreateBookingInput{
		FlightID:      1,
		SeatsReserved: []string{"1A", "1B"},
	})

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrNotEnoughSeats)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_FlightNotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	svc := newTestService(mockBookingRepo, mockFlightRepo, nil)

	mockFlightRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.CreateBooking(context.Background(), &domain.User{ID: 7}, CreateBookingInput{FlightID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_CreateBooking_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	svc := newTestService(mockBookingRepo, mockFlightRepo, mockProducer)

	flight := &domain.Flight{ID: 1, AvailableSeats: 5, TotalSeats: 150}
	mockFlightRepo.On("GetByID", mock.Anything, int64(1)).Return(flight, nil)
	mockBookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	detail, err := svc.CreateBooking(context.Background(), &domain.User{ID: 7, Username: "bob"}, CreateBookingInput{
		FlightID:      1,
		SeatsReserved: []string{"1A"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, detail)
}

func TestBookingService_GetBooking_Ownership(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	svc := newTestService(mockBookingRepo, &MockFlightRepository{}, nil)

	detail := &domain.BookingDetail{Booking: domain.Booking{ID: 5, UserID: 2}}
	mockBookingRepo.On("GetByID", mock.Anything, int64(5)).Return(detail, nil)

	_, err := svc.GetBooking(context.Background(), 5, 3, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.GetBooking(context.Background(), 5, 2, false)
	assert.NoError(t, err)
	assert.Equal(t, detail, got)

	got, err = svc.GetBooking(context.Background(), 5, 3, true)
	assert.NoError(t, err)
	assert.Equal(t, detail, got)
}

func TestBookingService_OccupiedSeats_Deduplicates(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	svc := newTestService(mockBookingRepo, mockFlightRepo, nil)

	mockFlightRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Flight{ID: 1}, nil)
	mockBookingRepo.On("SeatsForFlight", mock.Anything, int64(1)).
		Return([]string{"1A", "1A", "1B"}, nil)

	seats, err := svc.OccupiedSeats(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"1A", "1B"}, seats)
}

// In-memory repositories with the same conditional-decrement contract as the
// Postgres implementation, for exercising the allocator under contention.
type memFlightRepo struct {
	mu     sync.Mutex
	flight domain.Flight
}

func (r *memFlightRepo) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.flight.ID {
		return nil, domain.ErrNotFound
	}
	f := r.flight
	return &f, nil
}

func (r *memFlightRepo) List(ctx context.Context) ([]domain.Flight, error) { return nil, nil }
func (r *memFlightRepo) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	return nil, nil
}
func (r *memFlightRepo) Create(ctx context.Context, flight *domain.Flight) error { return nil }
func (r *memFlightRepo) Update(ctx context.Context, flight *domain.Flight) error { return nil }
func (r *memFlightRepo) Airports(ctx context.Context) ([]string, error)          { return nil, nil }

type memBookingRepo struct {
	flights *memFlightRepo
	mu      sync.Mutex
	created []domain.Booking
}

func (r *memBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	r.flights.mu.Lock()
	defer r.flights.mu.Unlock()
	n := len(booking.SeatsReserved)
	if r.flights.flight.AvailableSeats < n {
		return domain.ErrNotEnoughSeats
	}
	r.flights.flight.AvailableSeats -= n
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *booking)
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	return nil, domain.ErrNotFound
}
func (r *memBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return nil, nil
}
func (r *memBookingRepo) SeatsForFlight(ctx context.Context, flightID int64) ([]string, error) {
	return nil, nil
}

func TestBookingService_CreateBooking_NoOverbookingUnderContention(t *testing.T) {
	flightRepo := &memFlightRepo{flight: domain.Flight{ID: 1, AvailableSeats: 10, TotalSeats: 10}}
	bookingRepo := &memBookingRepo{flights: flightRepo}
	svc := newTestService(bookingRepo, flightRepo, nil)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), &domain.User{ID: 1, Username: "u"}, CreateBookingInput{
				FlightID:      1,
				SeatsReserved: []string{"A", "B"},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrNotEnoughSeats):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, attempts-5, rejected)
	assert.Equal(t, 0, flightRepo.flight.AvailableSeats)
	assert.Len(t, bookingRepo.created, 5)
}
