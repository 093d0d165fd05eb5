package get_profile

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

type ProfileService interface {
	GetProfile(ctx context.Context, token string) (*profile.Profile, error)
}

type SessionService interface {
	Logout(ctx context.Context, id string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
