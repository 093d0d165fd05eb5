package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/submission"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
)

// ledgerTimeout ограничивает Complete и Release после отмены запроса
const ledgerTimeout = 5 * time.Second

// UseCase use case для создания записи на услугу
type UseCase struct {
	client       BookingAPIClient
	ledger       SubmissionLedger
	engine       *availability.Engine
	observer     SubmissionObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client BookingAPIClient,
	ledger SubmissionLedger,
	engine *availability.Engine,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		ledger:       ledger,
		engine:       engine,
		observer:     nopObserver{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithObserver подключает сбор метрик по попыткам записи
func (uc *UseCase) WithObserver(observer SubmissionObserver) *UseCase {
	uc.observer = observer
	return uc
}

// Execute выполняет use case создания записи
//
// Повторов нет: ошибка сети возвращается один раз, клиент может отправить
// форму снова с тем же ключом идемпотентности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.observer.ObserveSubmission(outcomeOf(resp, err))
	}()

	// 1. Сессия должна быть авторизована
	if req.Token == "" {
		uc.logger.Warn("CreateAppointment: no token in session")
		return nil, ErrUnauthenticated
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	loc := uc.engine.Location()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	candidate := req.StartTime.On(day, loc)

	form := Form{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Comment:     req.Comment,
		MasterID:    req.MasterID,
	}

	// 3. Проверяем форму до обращения к Booking API
	if _, err := validateForm(candidate, uc.engine.SlotStep(), form); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: service=%d, time=%s", req.ServiceID, candidate.Format(time.RFC3339))

	// 4. Получаем услугу и переводим время в UTC
	apiService, err := uc.client.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapClientError("get service", req.ServiceID, err)
	}

	appointmentReq, err := BuildAppointmentRequest(apiService.ToDomain(), candidate, uc.engine.SlotStep(), form)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 5. Резервируем ключ идемпотентности
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	if replay, err := uc.reserve(ctx, key, appointmentReq); replay != nil || err != nil {
		return replay, err
	}

	resp, err = uc.submit(ctx, req.Token, key, appointmentReq)
	if err != nil {
		ledgerCtx, cancel := detached(ctx)
		defer cancel()
		if releaseErr := uc.ledger.Release(ledgerCtx, key); releaseErr != nil {
			uc.logger.Error("CreateAppointment: failed to release key=%s: %v", key, releaseErr)
		}
		return nil, err
	}

	return resp, nil
}

// reserve резервирует ключ в журнале
// Если запись с этим ключом уже создана, возвращает её без повторной отправки
func (uc *UseCase) reserve(ctx context.Context, key string, appointmentReq *domain.AppointmentRequest) (*Response, error) {
	err := uc.ledger.Reserve(ctx, key, appointmentReq.ServiceID, appointmentReq.StartsAt)
	if err == nil {
		return nil, nil
	}

	if !errors.Is(err, submission.ErrAlreadyExists) {
		uc.logger.Error("CreateAppointment: failed to reserve key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to reserve idempotency key: %v", ErrInternal, err)
	}

	existing, err := uc.ledger.Get(ctx, key)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			// Резерв сняли между Reserve и Get, предыдущая попытка завершилась ошибкой
			return nil, ErrSubmissionInProgress
		}
		uc.logger.Error("CreateAppointment: failed to get submission key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to get submission: %v", ErrInternal, err)
	}

	if !existing.Matches(appointmentReq.ServiceID, appointmentReq.StartsAt) {
		uc.logger.Warn("CreateAppointment: key=%s belongs to service=%d, got service=%d", key, existing.ServiceID, appointmentReq.ServiceID)
		return nil, newValidationError(KindInvalidIdempotencyKey, "idempotency_key", "idempotency key was used for another appointment")
	}

	if !existing.IsCompleted() {
		uc.logger.Warn("CreateAppointment: key=%s is still being submitted", key)
		return nil, ErrSubmissionInProgress
	}

	startsAt := existing.StartsAt
	if startsAt.IsZero() {
		// строки журнала без starts_at
		startsAt = appointmentReq.StartsAt
	}

	uc.logger.Info("CreateAppointment: key=%s already completed, appointment id=%d", key, *existing.AppointmentID)
	return &Response{
		AppointmentID:  *existing.AppointmentID,
		IdempotencyKey: key,
		ServiceID:      existing.ServiceID,
		StartsAt:       startsAt.UTC(),
		Replayed:       true,
	}, nil
}

// submit проверяет слот по свежим данным и отправляет запись в Booking API
func (uc *UseCase) submit(ctx context.Context, token, key string, appointmentReq *domain.AppointmentRequest) (*Response, error) {
	booked, err := uc.loadBooked(ctx, appointmentReq.ServiceID)
	if err != nil {
		return nil, uc.mapClientError("list appointments", appointmentReq.ServiceID, err)
	}

	now := uc.timeProvider.Now()
	if !uc.engine.IsSlotSelectable(appointmentReq.StartsAt, booked, now) {
		uc.logger.Warn("CreateAppointment: slot %s is not selectable for service=%d",
			appointmentReq.StartsAt.Format(time.RFC3339), appointmentReq.ServiceID)
		return nil, &RejectionError{Err: ErrSlotNotAvailable, BookedSlots: booked.Instants()}
	}

	created, err := uc.client.CreateAppointment(ctx, token, key, bookingapi.NewCreateAppointmentRequest(appointmentReq))
	if err != nil {
		if errors.Is(err, bookingapi.ErrRejected) || errors.Is(err, bookingapi.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: booking api rejected service=%d: %v", appointmentReq.ServiceID, err)
			return nil, uc.rejected(ctx, appointmentReq.ServiceID, err)
		}
		return nil, uc.mapClientError("create appointment", appointmentReq.ServiceID, err)
	}

	ledgerCtx, cancel := detached(ctx)
	defer cancel()
	if err := uc.ledger.Complete(ledgerCtx, key, created.ID); err != nil {
		// Запись уже создана, ошибка журнала не должна её скрыть
		uc.logger.Error("CreateAppointment: failed to complete key=%s: %v", key, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for service=%d", created.ID, appointmentReq.ServiceID)

	return &Response{
		AppointmentID:  created.ID,
		IdempotencyKey: key,
		ServiceID:      appointmentReq.ServiceID,
		StartsAt:       appointmentReq.StartsAt,
	}, nil
}

// rejected перезапрашивает занятые слоты после отказа Booking API
func (uc *UseCase) rejected(ctx context.Context, serviceID int64, cause error) error {
	rejection := &RejectionError{Err: fmt.Errorf("%w: %v", ErrServerRejected, cause)}

	booked, err := uc.loadBooked(ctx, serviceID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to refresh booked slots for service=%d: %v", serviceID, err)
		return rejection
	}

	rejection.BookedSlots = booked.Instants()
	return rejection
}

// detached отвязывает операции журнала от отмены запроса
// Клиент может закрыть вкладку во время отправки, а резерв всё равно нужно снять или завершить
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), ledgerTimeout)
}

func (uc *UseCase) loadBooked(ctx context.Context, serviceID int64) (availability.BookedSlots, error) {
	appointments, err := uc.client.ListAppointments(ctx, serviceID)
	if err != nil {
		return availability.BookedSlots{}, err
	}

	domainAppointments := make([]*domain.Appointment, 0, len(appointments))
	for i := range appointments {
		domainAppointments = append(domainAppointments, appointments[i].ToDomain())
	}
	return availability.BookedFromAppointments(domainAppointments), nil
}

func (uc *UseCase) mapClientError(op string, serviceID int64, err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrUnauthenticated):
		uc.logger.Warn("CreateAppointment: %s: token rejected", op)
		return ErrUnauthenticated
	case errors.Is(err, bookingapi.ErrNotFound):
		uc.logger.Warn("CreateAppointment: %s: service id=%d not found", op, serviceID)
		return ErrServiceNotFound
	case errors.Is(err, bookingapi.ErrNetwork):
		uc.logger.Warn("CreateAppointment: %s: booking api unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	default:
		uc.logger.Error("CreateAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func outcomeOf(resp *Response, err error) string {
	switch {
	case err == nil && resp != nil && resp.Replayed:
		return outcomeReplayed
	case err == nil:
		return outcomeSucceeded
	case errors.Is(err, ErrValidation):
		return outcomeValidationFailed
	case errors.Is(err, ErrUnauthenticated):
		return outcomeUnauthenticated
	case errors.Is(err, ErrSlotNotAvailable):
		return outcomeSlotUnavailable
	case errors.Is(err, ErrServerRejected):
		return outcomeRejected
	case errors.Is(err, ErrSubmissionInProgress):
		return outcomeInProgress
	case errors.Is(err, ErrNetwork):
		return outcomeNetwork
	default:
		return outcomeError
	}
}
