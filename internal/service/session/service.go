package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// Service провайдер сессий: токен Booking API и тема оформления
// Каждое изменение сохраняется в хранилище и рассылается подписчикам
type Service struct {
	store        Store
	authClient   AuthClient
	listeners    listeners
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр провайдера сессий
func NewService(store Store, authClient AuthClient, logger Logger) *Service {
	return &Service{
		store:        store,
		authClient:   authClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Subscribe подписывает listener на изменения сессий
// Возвращает функцию отписки
func (s *Service) Subscribe(listener Listener) func() {
	return s.listeners.add(listener)
}

// Load получает сессию по ID
// Если ID пустой или сессия не найдена, создаёт новую со светлой темой
// Истёкший токен удаляется из сессии
func (s *Service) Load(ctx context.Context, id string) (*domain.Session, error) {
	now := s.timeProvider.Now()

	if id != "" {
		current, err := s.store.Get(ctx, id)
		switch {
		case err == nil:
			if current.HasToken() && !current.Authenticated(now) {
				s.logger.Info("Load: token expired for session=%s", id)
				current.Token = ""
				current.TokenExpiresAt = nil
				return s.save(ctx, current, EventLoggedOut)
			}
			return current, nil
		case errors.Is(err, session.ErrSessionNotFound):
			s.logger.Info("Load: session=%s not found, creating new one", id)
		default:
			s.logger.Error("Load: failed to get session=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Load - store error: %v", ErrInternal, err)
		}
	}

	created := &domain.Session{
		ID:        uuid.NewString(),
		Theme:     domain.ThemeLight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.save(ctx, created, EventCreated)
}

// Login выполняет вход в Booking API и сохраняет токен в сессии
func (s *Service) Login(ctx context.Context, id, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	current, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	token, err := s.authClient.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, bookingapi.ErrUnauthenticated),
			errors.Is(err, bookingapi.ErrRejected),
			errors.Is(err, bookingapi.ErrNotFound):
			s.logger.Warn("Login: credentials rejected for session=%s", current.ID)
			return nil, ErrInvalidCredentials
		case errors.Is(err, bookingapi.ErrNetwork):
			s.logger.Warn("Login: booking api unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		default:
			s.logger.Error("Login: unexpected error for session=%s: %v", current.ID, err)
			return nil, fmt.Errorf("%w: Login - client error: %v", ErrInternal, err)
		}
	}

	current.Token = token.AccessToken
	current.TokenExpiresAt = tokenExpiry(token.AccessToken)

	s.logger.Info("Login: session=%s authenticated", current.ID)
	return s.save(ctx, current, EventLoggedIn)
}

// Register регистрирует пользователя в Booking API и сразу выполняет вход
func (s *Service) Register(ctx context.Context, id, username, email, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	_, err := s.authClient.Register(ctx, &bookingapi.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingapi.ErrRejected):
			s.logger.Warn("Register: rejected for email=%s: %v", email, err)
			return nil, fmt.Errorf("%w: %v", ErrRegistrationRejected, err)
		case errors.Is(err, bookingapi.ErrNetwork):
			s.logger.Warn("Register: booking api unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		default:
			s.logger.Error("Register: unexpected error: %v", err)
			return nil, fmt.Errorf("%w: Register - client error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Register: user email=%s registered", email)
	return s.Login(ctx, id, email, password)
}

// Logout удаляет токен из сессии, тема сохраняется
func (s *Service) Logout(ctx context.Context, id string) (*domain.Session, error) {
	current, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.HasToken() {
		return current, nil
	}

	current.Token = ""
	current.TokenExpiresAt = nil

	s.logger.Info("Logout: session=%s", current.ID)
	return s.save(ctx, current, EventLoggedOut)
}

// ToggleTheme переключает тему оформления
func (s *Service) ToggleTheme(ctx context.Context, id string) (*domain.Session, error) {
	current, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Theme = current.Theme.Toggle()
	return s.save(ctx, current, EventThemeChanged)
}

func (s *Service) save(ctx context.Context, current *domain.Session, kind EventKind) (*domain.Session, error) {
	current.UpdatedAt = s.timeProvider.Now()

	if err := s.store.Save(ctx, current); err != nil {
		s.logger.Error("save: failed to save session=%s: %v", current.ID, err)
		return nil, fmt.Errorf("%w: save - store error: %v", ErrInternal, err)
	}

	s.listeners.notify(Event{Kind: kind, Session: *current})
	return current, nil
}

// tokenExpiry читает exp из JWT без проверки подписи
// Подпись проверяет Booking API, здесь нужен только срок действия
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	t := exp.Time.UTC()
	return &t
}
