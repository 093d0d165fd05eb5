package delete_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type ProfileService interface {
	DeleteAppointment(ctx context.Context, token string, appointmentID int64) error
}

type SessionService interface {
	Logout(ctx context.Context, id string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
