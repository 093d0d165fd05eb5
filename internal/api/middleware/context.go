package middleware

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionHeader заголовок с ID сессии для клиентов без cookie
const SessionHeader = "X-Session-ID"

// WithSession кладёт сессию в контекст
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext достаёт сессию, загруженную middleware Session
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}
