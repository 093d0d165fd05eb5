package update_profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeProfile struct {
	got *profile.UpdateRequest
	err error
}

func (f *fakeProfile) UpdateProfile(_ context.Context, _ string, req *profile.UpdateRequest) (*domain.User, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: 7, Username: *req.Username, Email: "ivan@example.com", Role: "client"}, nil
}

type fakeSessions struct {
	loggedOut []string
}

func (f *fakeSessions) Logout(_ context.Context, id string) (*domain.Session, error) {
	f.loggedOut = append(f.loggedOut, id)
	return &domain.Session{ID: id}, nil
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", strings.NewReader(body))
	return req.WithContext(middleware.WithSession(req.Context(), &domain.Session{ID: "s-1", Token: "tok"}))
}

func TestHandler_Handle(t *testing.T) {
	fake := &fakeProfile{}
	rec := httptest.NewRecorder()
	NewHandler(fake, &fakeSessions{}, logger.NewNop()).Handle(rec, newRequest(`{"username":"Иван"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.got)
	assert.Nil(t, fake.got.Email)
	assert.Nil(t, fake.got.Password)
	assert.JSONEq(t, `{"id":7,"username":"Иван","email":"ivan@example.com","role":"client"}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad body", `{"username":`, nil, http.StatusBadRequest},
		{"invalid", `{}`, profile.ErrInvalidInput, http.StatusBadRequest},
		{"rejected", `{"email":"taken@example.com"}`, profile.ErrRejected, http.StatusConflict},
		{"unauthenticated", `{"username":"x"}`, profile.ErrUnauthenticated, http.StatusUnauthorized},
		{"network", `{"username":"x"}`, profile.ErrNetwork, http.StatusBadGateway},
		{"internal", `{"username":"x"}`, profile.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeProfile{err: tt.err}, &fakeSessions{}, logger.NewNop()).Handle(rec, newRequest(tt.body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
