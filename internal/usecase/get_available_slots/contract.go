package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента Booking API
type BookingAPIClient interface {
	GetService(ctx context.Context, serviceID int64) (*bookingapi.Service, error)
	ListAppointments(ctx context.Context, serviceID int64) ([]bookingapi.Appointment, error)
}

// SlotObserver принимает результаты проверки слотов (метрики)
type SlotObserver interface {
	ObserveSlotEvaluation(selectable bool)
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

func (nopObserver) ObserveSlotEvaluation(bool) {}
