package list_services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeCatalog struct {
	services []*domain.Service
	err      error
}

func (f *fakeCatalog) ListServices(context.Context) ([]*domain.Service, error) {
	return f.services, f.err
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(&fakeCatalog{services: []*domain.Service{
		{ID: 1, Name: "Стрижка", Price: 1500, DurationMinutes: 45},
		{ID: 2, Name: "Бритьё", Price: 900, DurationMinutes: 30},
	}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Стрижка", body[0].Name)
	assert.Equal(t, 30, body[1].DurationMinutes)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"network", fmt.Errorf("%w: timeout", catalog.ErrNetwork), http.StatusBadGateway},
		{"internal", catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCatalog{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
