package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента Booking API
type BookingAPIClient interface {
	GetService(ctx context.Context, serviceID int64) (*bookingapi.Service, error)
	ListAppointments(ctx context.Context, serviceID int64) ([]bookingapi.Appointment, error)
	CreateAppointment(ctx context.Context, token, idempotencyKey string, req *bookingapi.CreateAppointmentRequest) (*bookingapi.Appointment, error)
}

// SubmissionLedger журнал отправок по ключу идемпотентности
type SubmissionLedger interface {
	Reserve(ctx context.Context, key string, serviceID int64, startsAt time.Time) error
	Get(ctx context.Context, key string) (*domain.Submission, error)
	Complete(ctx context.Context, key string, appointmentID int64) error
	Release(ctx context.Context, key string) error
}

// SubmissionObserver принимает результаты попыток записи (метрики)
type SubmissionObserver interface {
	ObserveSubmission(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopObserver struct{}

func (nopObserver) ObserveSubmission(string) {}
