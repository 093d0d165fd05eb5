package get_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeUseCase struct {
	got  *getCalendar.Request
	resp *getCalendar.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getCalendar.Request) (*getCalendar.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}/calendar", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	fake := &fakeUseCase{resp: &getCalendar.Response{
		ServiceID: 5,
		Year:      2024,
		Month:     time.May,
		Days: []getCalendar.Day{
			{Date: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), HasBookedSlots: true, HasSelectableSlots: true},
			{Date: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), Holiday: &domain.Holiday{Day: 9, Month: time.May, Name: "День Победы"}},
		},
	}}

	rec := serve(NewHandler(fake, logger.NewNop()), "/api/v1/services/5/calendar?month=2024-05")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getCalendar.Request{ServiceID: 5, Year: 2024, Month: time.May}, fake.got)
	assert.JSONEq(t, `{
		"serviceId": 5,
		"month": "2024-05",
		"days": [
			{"date":"2024-05-08","hasBookedSlots":true,"hasSelectableSlots":true},
			{"date":"2024-05-09","holiday":"День Победы","hasBookedSlots":false,"hasSelectableSlots":false}
		]
	}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"missing month", "/api/v1/services/5/calendar", nil, http.StatusBadRequest},
		{"bad month", "/api/v1/services/5/calendar?month=2024-13", nil, http.StatusBadRequest},
		{"not found", "/api/v1/services/5/calendar?month=2024-05", getCalendar.ErrServiceNotFound, http.StatusNotFound},
		{"network", "/api/v1/services/5/calendar?month=2024-05", getCalendar.ErrNetwork, http.StatusBadGateway},
		{"internal", "/api/v1/services/5/calendar?month=2024-05", getCalendar.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), tt.path)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
