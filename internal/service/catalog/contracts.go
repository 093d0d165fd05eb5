package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента Booking API для каталога
type BookingAPIClient interface {
	ListServices(ctx context.Context) ([]bookingapi.Service, error)
	GetService(ctx context.Context, serviceID int64) (*bookingapi.Service, error)
	ListMasters(ctx context.Context) ([]bookingapi.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
