package session

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Store хранилище сессий
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
