package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// Service сервис профиля пользователя
type Service struct {
	client BookingAPIClient
	logger Logger
}

// NewService создает новый экземпляр сервиса профиля
func NewService(client BookingAPIClient, logger Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetProfile получает пользователя и историю его записей
func (s *Service) GetProfile(ctx context.Context, token string) (*Profile, error) {
	user, err := s.client.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, s.mapError("GetProfile", err)
	}

	history, err := s.client.GetAppointmentHistory(ctx, token)
	if err != nil {
		return nil, s.mapError("GetProfile", err)
	}

	appointments := make([]*domain.Appointment, 0, len(history))
	for i := range history {
		appointments = append(appointments, history[i].ToDomain())
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartsAt.After(appointments[j].StartsAt)
	})

	s.logger.Info("GetProfile: user id=%d, %d appointments", user.ID, len(appointments))
	return &Profile{User: user.ToDomain(), Appointments: appointments}, nil
}

// UpdateProfile меняет имя, email или пароль пользователя
func (s *Service) UpdateProfile(ctx context.Context, token string, req *UpdateRequest) (*domain.User, error) {
	if req == nil || req.isEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	update := &bookingapi.UpdateUserRequest{Password: req.Password}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
		}
		update.Username = &username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", ErrInvalidInput)
		}
		update.Email = &email
	}
	if req.Password != nil && *req.Password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	user, err := s.client.UpdateCurrentUser(ctx, token, update)
	if err != nil {
		return nil, s.mapError("UpdateProfile", err)
	}

	s.logger.Info("UpdateProfile: user id=%d updated", user.ID)
	return user.ToDomain(), nil
}

// DeleteAppointment удаляет запись пользователя
func (s *Service) DeleteAppointment(ctx context.Context, token string, appointmentID int64) error {
	if appointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	if err := s.client.DeleteAppointment(ctx, token, appointmentID); err != nil {
		if errors.Is(err, bookingapi.ErrNotFound) {
			s.logger.Warn("DeleteAppointment: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		return s.mapError("DeleteAppointment", err)
	}

	s.logger.Info("DeleteAppointment: appointment id=%d deleted", appointmentID)
	return nil
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrUnauthenticated):
		s.logger.Warn("%s: token rejected by booking api", op)
		return ErrUnauthenticated
	case errors.Is(err, bookingapi.ErrRejected):
		s.logger.Warn("%s: rejected: %v", op, err)
		return fmt.Errorf("%w: %v", ErrRejected, err)
	case errors.Is(err, bookingapi.ErrNetwork):
		s.logger.Warn("%s: booking api unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	default:
		s.logger.Error("%s: client error: %v", op, err)
		return fmt.Errorf("%w: %s - client error: %v", ErrInternal, op, err)
	}
}
