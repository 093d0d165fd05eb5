package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// UseCase use case для получения календаря услуги на месяц
type UseCase struct {
	client       BookingAPIClient
	engine       *availability.Engine
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client BookingAPIClient, engine *availability.Engine, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		engine:       engine,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetCalendar: service=%d, month=%04d-%02d", req.ServiceID, req.Year, int(req.Month))

	// Проверяем, что услуга существует
	if _, err := uc.client.GetService(ctx, req.ServiceID); err != nil {
		return nil, uc.mapError(req.ServiceID, err)
	}

	appointments, err := uc.client.ListAppointments(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapError(req.ServiceID, err)
	}

	domainAppointments := make([]*domain.Appointment, 0, len(appointments))
	for i := range appointments {
		domainAppointments = append(domainAppointments, appointments[i].ToDomain())
	}
	booked := availability.BookedFromAppointments(domainAppointments)

	now := uc.timeProvider.Now()
	first := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, uc.engine.Location())

	days := make([]Day, 0, 31)
	for day := first; day.Month() == req.Month; day = day.AddDate(0, 0, 1) {
		info := uc.engine.Day(day, booked, now)
		days = append(days, Day{
			Date:               info.Date,
			Holiday:            info.Holiday,
			HasBookedSlots:     info.HasBookedSlots,
			HasSelectableSlots: info.HasSelectableSlots,
		})
	}

	return &Response{
		ServiceID: req.ServiceID,
		Year:      req.Year,
		Month:     req.Month,
		Days:      days,
	}, nil
}

func (uc *UseCase) mapError(serviceID int64, err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrNotFound):
		uc.logger.Warn("GetCalendar: service id=%d not found", serviceID)
		return ErrServiceNotFound
	case errors.Is(err, bookingapi.ErrNetwork):
		uc.logger.Warn("GetCalendar: booking api unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	default:
		uc.logger.Error("GetCalendar: failed to load service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to load service data: %v", ErrInternal, err)
	}
}
