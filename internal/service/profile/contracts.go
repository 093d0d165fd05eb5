package profile

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента Booking API для профиля
type BookingAPIClient interface {
	GetCurrentUser(ctx context.Context, token string) (*bookingapi.User, error)
	UpdateCurrentUser(ctx context.Context, token string, req *bookingapi.UpdateUserRequest) (*bookingapi.User, error)
	GetAppointmentHistory(ctx context.Context, token string) ([]bookingapi.Appointment, error)
	DeleteAppointment(ctx context.Context, token string, appointmentID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
