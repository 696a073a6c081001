package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carservice/internal/api/middleware"
	createBooking "carservice/internal/usecase/create_booking"
)

type fakeUseCase struct {
	response *createBooking.Response
	err      error

	lastRequest *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBody() string {
	return `{
		"serviceId": 10,
		"stationId": 1,
		"scheduledDate": "2026-03-10T11:30:00Z",
		"vehicleDetails": {
			"make": "Toyota",
			"model": "Camry",
			"year": 2020,
			"licensePlate": "А123БВ77"
		}
	}`
}

// newServer оборачивает handler в Auth middleware, как в production роутере
func newServer(uc *fakeUseCase) http.Handler {
	handler := NewHandler(uc, nopLogger{})
	return middleware.Auth(http.HandlerFunc(handler.Handle))
}

func doRequest(t *testing.T, srv http.Handler, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	scheduled := time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)
	uc := &fakeUseCase{
		response: &createBooking.Response{
			ID:              42,
			UserID:          7,
			ServiceID:       10,
			StationID:       1,
			ScheduledDate:   scheduled,
			DurationMinutes: 60,
			TotalPrice:      3500,
			Status:          "pending",
			ServiceName:     "Замена масла",
			StationName:     "Центральная станция",
			CreatedAt:       scheduled,
			UpdatedAt:       scheduled,
		},
	}

	rec := doRequest(t, newServer(uc), "7", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-03-10T11:30:00Z", resp.ScheduledDate)

	// UserID должен прийти из заголовка, а не из тела
	require.NotNil(t, uc.lastRequest)
	assert.Equal(t, int64(7), uc.lastRequest.UserID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
	}{
		{"slot not available", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"wrapped slot not available", fmt.Errorf("%w: policy=symmetric_window", createBooking.ErrSlotNotAvailable), http.StatusConflict},
		{"station not found", createBooking.ErrStationNotFound, http.StatusNotFound},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"service not available at station", createBooking.ErrServiceNotAvailableAtStation, http.StatusBadRequest},
		{"past schedule", createBooking.ErrPastSchedule, http.StatusBadRequest},
		{"outside operating hours", createBooking.ErrOutsideOperatingHours, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.useCaseErr}

			rec := doRequest(t, newServer(uc), "7", validBody())

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		wantStatus int
	}{
		{"missing user header", "", validBody(), http.StatusUnauthorized},
		{"non-numeric user header", "abc", validBody(), http.StatusUnauthorized},
		{"malformed json", "7", `{"serviceId": `, http.StatusBadRequest},
		{"unknown field", "7", `{"serviceId": 10, "bogus": true}`, http.StatusBadRequest},
		{"missing vehicle details", "7", `{"serviceId": 10, "stationId": 1, "scheduledDate": "2026-03-10T11:30:00Z"}`, http.StatusBadRequest},
		{
			"vehicle year out of range", "7",
			`{"serviceId": 10, "stationId": 1, "scheduledDate": "2026-03-10T11:30:00Z",
			  "vehicleDetails": {"make": "Toyota", "model": "Camry", "year": 1800, "licensePlate": "X"}}`,
			http.StatusBadRequest,
		},
		{
			"non-RFC3339 date", "7",
			`{"serviceId": 10, "stationId": 1, "scheduledDate": "2026-03-10 11:30",
			  "vehicleDetails": {"make": "Toyota", "model": "Camry", "year": 2020, "licensePlate": "X"}}`,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := doRequest(t, newServer(uc), tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			// До use case дело дойти не должно
			assert.Nil(t, uc.lastRequest)
		})
	}
}
