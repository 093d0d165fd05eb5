package register

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/session"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct {
	gotUsername string
	err         error
}

func (f *fakeService) Register(_ context.Context, id, username, _, _ string) (*domain.Session, error) {
	f.gotUsername = username
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Session{ID: id, Token: "tok", Theme: domain.ThemeDark}, nil
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/register", strings.NewReader(body))
	return req.WithContext(middleware.WithSession(req.Context(), &domain.Session{ID: "s-1"}))
}

func TestHandler_Handle(t *testing.T) {
	fake := &fakeService{}
	rec := httptest.NewRecorder()
	NewHandler(fake, logger.NewNop()).Handle(rec, newRequest(`{"username":"Иван","email":"ivan@example.com","password":"secret"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Иван", fake.gotUsername)
	assert.JSONEq(t, `{"id":"s-1","theme":"dark","authenticated":true}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	body := `{"username":"Иван","email":"ivan@example.com","password":"secret"}`
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", session.ErrInvalidInput, http.StatusBadRequest},
		{"email taken", fmt.Errorf("%w: Email already registered", session.ErrRegistrationRejected), http.StatusConflict},
		{"login failed", session.ErrInvalidCredentials, http.StatusUnauthorized},
		{"network", session.ErrNetwork, http.StatusBadGateway},
		{"internal", session.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
