package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flightbook/internal/auth"
	"flightbook/internal/domain"
	"flightbook/internal/service/flights"
	"flightbook/internal/service/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockUserUseCase) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockUserUseCase) ListPending(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUseCase) Approve(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAdminHandler_createFlight(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewAdminHandler(mockFlights, &MockUserUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/admin/flights/", strings.NewReader(`{
		"flight_number": "FB300",
		"departure_airport": "JFK",
		"arrival_airport": "SFO",
		"departure_time": "2026-10-01T09:00:00Z",
		"arrival_time": "2026-10-01T15:00:00Z",
		"price": 199.99
	}`))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Flight{
		ID:             5,
		FlightNumber:   "FB300",
		PriceCents:     19999,
		AvailableSeats: 150,
		TotalSeats:     150,
		Status:         domain.FlightStatusOnTime,
	}
	mockFlights.On("Create", mock.Anything, mock.MatchedBy(func(in flights.CreateFlightInput) bool {
		return in.FlightNumber == "FB300" && in.PriceCents == 19999 && in.AvailableSeats == nil
	})).Return(created, nil)

	handler.createFlight(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":"199.99"`)
	mockFlights.AssertExpectations(t)
}

func TestAdminHandler_updateFlight_StatusOnly(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewAdminHandler(mockFlights, &MockUserUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("PATCH", "/api/admin/flights/5/status/",
		strings.NewReader(`{"status": "delayed"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	updated := &domain.Flight{ID: 5, FlightNumber: "FB300", Status: domain.FlightStatusDelayed}
	mockFlights.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(in flights.UpdateFlightInput) bool {
		return in.Status != nil && *in.Status == domain.FlightStatusDelayed &&
			in.FlightNumber == nil && in.PriceCents == nil
	})).Return(updated, nil)

	handler.updateFlight(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"delayed"`)
}

func TestAdminHandler_pendingUsers(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(&MockFlightUseCase{}, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/admin/users/pending/", nil)

	mockUsers.On("ListPending", mock.Anything).Return([]domain.User{
		{ID: 3, Username: "carol", Email: "carol@example.com", ApprovalStatus: domain.ApprovalStatusPending},
	}, nil)

	handler.pendingUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approval_status":"pending"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAdminHandler_approveUser(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(&MockFlightUseCase{}, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("PATCH", "/api/admin/users/3/approve/", nil)

	approved := &domain.User{ID: 3, Username: "carol", ApprovalStatus: domain.ApprovalStatusApproved}
	mockUsers.On("Approve", mock.Anything, int64(3)).Return(approved, nil)

	handler.approveUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approval_status":"approved"`)
}

func TestAdminHandler_approveUser_NotFound(t *testing.T) {
	mockUsers := &MockUserUseCase{}
	handler := NewAdminHandler(&MockFlightUseCase{}, mockUsers)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("PATCH", "/api/admin/users/99/approve/", nil)

	mockUsers.On("Approve", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	handler.approveUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
