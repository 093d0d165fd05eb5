package get_session

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

// SessionResponse HTTP модель сессии, токен наружу не отдаётся
type SessionResponse struct {
	ID             string  `json:"id"`
	Theme          string  `json:"theme"`
	Authenticated  bool    `json:"authenticated"`
	TokenExpiresAt *string `json:"tokenExpiresAt,omitempty"`
}

// FromDomain конвертирует сессию в HTTP модель
func FromDomain(s *domain.Session, now time.Time) *SessionResponse {
	resp := &SessionResponse{
		ID:            s.ID,
		Theme:         string(s.Theme),
		Authenticated: s.Authenticated(now),
	}
	if resp.Authenticated && s.TokenExpiresAt != nil {
		resp.TokenExpiresAt = ptr.Ptr(s.TokenExpiresAt.UTC().Format(time.RFC3339))
	}
	return resp
}
