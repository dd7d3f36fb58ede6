package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/middleware"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings"
	"github.com/m04kA/WorkSlot-BookingService/internal/service/bookings/models"
	"github.com/m04kA/WorkSlot-BookingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) SetStatus(ctx context.Context, providerID int64, id uuid.UUID, req *models.SetStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, providerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRouter(svc *MockBookingService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1/provider").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPut)
	return r
}

func send(r http.Handler, path, providerID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	if providerID != "" {
		req.Header.Set(middleware.ProviderIDHeader, providerID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirm(t *testing.T) {
	svc := new(MockBookingService)
	id := uuid.New()
	svc.On("SetStatus", mock.Anything, int64(7), id, &models.SetStatusRequest{Status: "confirmed"}).
		Return(&models.BookingResponse{ID: id.String(), Status: "confirmed"}, nil)

	rec := send(newRouter(svc), "/api/v1/provider/bookings/"+id.String()+"/status", "7", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "недопустимый переход", err: fmt.Errorf("%w: hold expired", bookings.ErrInvalidTransition), status: http.StatusConflict},
		{name: "не найдено", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "некорректный статус", err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "внутренняя ошибка", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := send(newRouter(svc), "/api/v1/provider/bookings/"+uuid.NewString()+"/status", "7", `{"status":"declined"}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	svc := new(MockBookingService)

	rec := send(newRouter(svc), "/api/v1/provider/bookings/"+uuid.NewString()+"/status", "", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	svc := new(MockBookingService)

	rec := send(newRouter(svc), "/api/v1/provider/bookings/42/status", "7", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
