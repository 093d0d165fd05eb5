package update_profile

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

type ProfileService interface {
	UpdateProfile(ctx context.Context, token string, req *profile.UpdateRequest) (*domain.User, error)
}

type SessionService interface {
	Logout(ctx context.Context, id string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
