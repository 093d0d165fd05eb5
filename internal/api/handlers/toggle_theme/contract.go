package toggle_theme

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type SessionService interface {
	ToggleTheme(ctx context.Context, id string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
