package domain

import "time"

// Theme тема оформления интерфейса
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle возвращает противоположную тему
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Session состояние пользователя между запросами: токен Booking API и тема
type Session struct {
	ID    string
	Token string
	Theme Theme

	// TokenExpiresAt срок действия токена, если его удалось прочитать из JWT
	TokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasToken возвращает true, если пользователь вошёл в систему
func (s *Session) HasToken() bool {
	return s.Token != ""
}

// Authenticated возвращает true, если токен есть и не истёк на момент now
func (s *Session) Authenticated(now time.Time) bool {
	if !s.HasToken() {
		return false
	}
	if s.TokenExpiresAt == nil {
		return true
	}
	return now.Before(*s.TokenExpiresAt)
}
