package delete_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeProfile struct {
	gotID int64
	err   error
}

func (f *fakeProfile) DeleteAppointment(_ context.Context, _ string, id int64) error {
	f.gotID = id
	return f.err
}

type fakeSessions struct {
	loggedOut []string
}

func (f *fakeSessions) Logout(_ context.Context, id string) (*domain.Session, error) {
	f.loggedOut = append(f.loggedOut, id)
	return &domain.Session{ID: id}, nil
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}", h.Handle)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{ID: "s-1", Token: "tok"}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	fake := &fakeProfile{}
	rec := serve(NewHandler(fake, &fakeSessions{}, logger.NewNop()), "/api/v1/appointments/12")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(12), fake.gotID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"bad id", "/api/v1/appointments/abc", nil, http.StatusBadRequest},
		{"invalid", "/api/v1/appointments/0", profile.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "/api/v1/appointments/12", profile.ErrAppointmentNotFound, http.StatusNotFound},
		{"rejected", "/api/v1/appointments/12", profile.ErrRejected, http.StatusConflict},
		{"network", "/api/v1/appointments/12", profile.ErrNetwork, http.StatusBadGateway},
		{"internal", "/api/v1/appointments/12", profile.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeProfile{err: tt.err}, &fakeSessions{}, logger.NewNop()), tt.path)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Handle_Unauthenticated(t *testing.T) {
	sessions := &fakeSessions{}
	rec := serve(NewHandler(&fakeProfile{err: profile.ErrUnauthenticated}, sessions, logger.NewNop()), "/api/v1/appointments/12")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"s-1"}, sessions.loggedOut)
}
