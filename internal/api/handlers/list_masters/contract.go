package list_masters

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type CatalogService interface {
	ListMasters(ctx context.Context) ([]*domain.Master, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
