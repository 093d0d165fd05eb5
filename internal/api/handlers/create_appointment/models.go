package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID      int64   `json:"serviceId"`
	Date           string  `json:"date"`      // YYYY-MM-DD
	StartTime      string  `json:"startTime"` // HH:MM по часовому поясу барбершопа
	ClientName     string  `json:"clientName"`
	ClientPhone    string  `json:"clientPhone"`
	Comment        *string `json:"comment,omitempty"`
	MasterID       *int64  `json:"masterId,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	AppointmentID  int64  `json:"appointmentId"`
	IdempotencyKey string `json:"idempotencyKey"`
	ServiceID      int64  `json:"serviceId"`
	StartsAt       string `json:"startsAt"` // RFC3339 в UTC
	Replayed       bool   `json:"replayed"`
}

// ValidationErrorResponse ответ на ошибку проверки формы
type ValidationErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field"`
}

// RejectionResponse ответ на отказ в записи с актуальными занятыми слотами
type RejectionResponse struct {
	Error       string   `json:"error"`
	BookedSlots []string `json:"bookedSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// idempotencyKey из заголовка важнее ключа в теле
func (r *CreateAppointmentRequest) ToUseCaseRequest(token, idempotencyKey string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	if idempotencyKey == "" {
		idempotencyKey = r.IdempotencyKey
	}

	return &createAppointment.Request{
		Token:          token,
		IdempotencyKey: idempotencyKey,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
		Comment:        r.Comment,
		MasterID:       r.MasterID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		AppointmentID:  resp.AppointmentID,
		IdempotencyKey: resp.IdempotencyKey,
		ServiceID:      resp.ServiceID,
		StartsAt:       resp.StartsAt.UTC().Format(time.RFC3339),
		Replayed:       resp.Replayed,
	}
}

func formatInstants(instants []time.Time) []string {
	result := make([]string, len(instants))
	for i, t := range instants {
		result[i] = t.UTC().Format(time.RFC3339)
	}
	return result
}
