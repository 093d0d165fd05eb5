package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// SessionProvider загружает или создаёт сессию
type SessionProvider interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Session загружает сессию по cookie или заголовку X-Session-ID и кладёт её в контекст
// Если сессия создана заново, её ID возвращается в cookie и заголовке
func Session(provider SessionProvider, cookieName string, ttl time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionID(r, cookieName)

			s, err := provider.Load(r.Context(), id)
			if err != nil {
				logger.Error("Session middleware: failed to load session: %v", err)
				handlers.RespondInternalError(w)
				return
			}

			if s.ID != id {
				SetSessionCookie(w, cookieName, s.ID, ttl)
			}
			w.Header().Set(SessionHeader, s.ID)

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// SetSessionCookie выставляет cookie сессии
func SetSessionCookie(w http.ResponseWriter, cookieName, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionID(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(SessionHeader)
}
