package register

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type SessionService interface {
	Register(ctx context.Context, id, username, email, password string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
