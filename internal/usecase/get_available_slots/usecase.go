package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase use case для получения сетки слотов дня
type UseCase struct {
	client       BookingAPIClient
	engine       *availability.Engine
	observer     SlotObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client BookingAPIClient,
	engine *availability.Engine,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		engine:       engine,
		observer:     nopObserver{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithObserver подключает сбор метрик по проверенным слотам
func (uc *UseCase) WithObserver(observer SlotObserver) *UseCase {
	uc.observer = observer
	return uc
}

// Execute выполняет use case получения слотов
// Занятые слоты запрашиваются заново при каждом вызове
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	loc := uc.engine.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, day.Format(domain.DateFormat))

	// 2. Получаем услугу
	service, err := uc.client.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapError(req.ServiceID, err)
	}

	// 3. Получаем занятые слоты услуги
	appointments, err := uc.client.ListAppointments(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapError(req.ServiceID, err)
	}
	booked := availability.BookedFromAppointments(toDomain(appointments))

	// 4. Строим сетку дня
	now := uc.timeProvider.Now()
	info := uc.engine.Day(day, booked, now)

	grid := uc.engine.DaySlots(day, booked, now)
	slots := make([]Slot, 0, len(grid))
	for _, s := range grid {
		uc.observer.ObserveSlotEvaluation(s.Selectable)
		slots = append(slots, Slot{
			StartTime:  types.NewTimeString(s.Start),
			StartsAt:   s.Start.UTC(),
			Booked:     s.Booked,
			Selectable: s.Selectable,
		})
	}

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, %d slots, %d booked in total",
		req.ServiceID, day.Format(domain.DateFormat), len(slots), booked.Len())

	return &Response{
		Date:           info.Date,
		Service:        service.ToDomain(),
		Holiday:        info.Holiday,
		HasBookedSlots: info.HasBookedSlots,
		Slots:          slots,
	}, nil
}

func (uc *UseCase) mapError(serviceID int64, err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrNotFound):
		uc.logger.Warn("GetAvailableSlots: service id=%d not found", serviceID)
		return ErrServiceNotFound
	case errors.Is(err, bookingapi.ErrNetwork):
		uc.logger.Warn("GetAvailableSlots: booking api unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to load service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to load service data: %v", ErrInternal, err)
	}
}

func toDomain(appointments []bookingapi.Appointment) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, appointments[i].ToDomain())
	}
	return result
}
