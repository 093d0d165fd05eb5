package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// Service сервис каталога услуг и мастеров
type Service struct {
	client BookingAPIClient
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(client BookingAPIClient, logger Logger) *Service {
	return &Service{client: client, logger: logger}
}

// ListServices получает все услуги
func (s *Service) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.client.ListServices(ctx)
	if err != nil {
		return nil, s.mapError("ListServices", err)
	}

	result := make([]*domain.Service, 0, len(services))
	for i := range services {
		result = append(result, services[i].ToDomain())
	}

	s.logger.Info("ListServices: fetched %d services", len(result))
	return result, nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := s.client.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, bookingapi.ErrNotFound) {
			s.logger.Warn("GetService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		return nil, s.mapError("GetService", err)
	}
	return service.ToDomain(), nil
}

// ListMasters получает всех мастеров
func (s *Service) ListMasters(ctx context.Context) ([]*domain.Master, error) {
	masters, err := s.client.ListMasters(ctx)
	if err != nil {
		return nil, s.mapError("ListMasters", err)
	}

	result := make([]*domain.Master, 0, len(masters))
	for i := range masters {
		result = append(result, masters[i].ToDomain())
	}
	return result, nil
}

func (s *Service) mapError(op string, err error) error {
	if errors.Is(err, bookingapi.ErrNetwork) {
		s.logger.Warn("%s: booking api unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	s.logger.Error("%s: client error: %v", op, err)
	return fmt.Errorf("%w: %s - client error: %v", ErrInternal, op, err)
}
