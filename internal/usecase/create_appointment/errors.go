package create_appointment

import (
	"errors"
	"time"
)

var (
	// ErrValidation возвращается, когда данные формы не прошли проверку
	// Конкретная причина доступна через *ValidationError
	ErrValidation = errors.New("create_appointment: validation failed")

	// ErrUnauthenticated возвращается, когда токен отсутствует или истёк
	ErrUnauthenticated = errors.New("create_appointment: unauthenticated")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSlotNotAvailable возвращается, когда выбранный момент нельзя забронировать
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrServerRejected возвращается, когда Booking API отклонил запись
	ErrServerRejected = errors.New("create_appointment: rejected by booking api")

	// ErrSubmissionInProgress возвращается, когда запись с тем же ключом ещё отправляется
	ErrSubmissionInProgress = errors.New("create_appointment: submission in progress")

	// ErrNetwork возвращается, когда Booking API недоступен
	ErrNetwork = errors.New("create_appointment: booking api unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// ValidationErrorKind причина отказа в проверке формы
type ValidationErrorKind string

const (
	KindInvalidPhoneFormat    ValidationErrorKind = "invalid_phone_format"
	KindMissingField          ValidationErrorKind = "missing_field"
	KindTooLong               ValidationErrorKind = "too_long"
	KindInvalidTimeStep       ValidationErrorKind = "invalid_time_step"
	KindInvalidIdempotencyKey ValidationErrorKind = "invalid_idempotency_key"
)

// ValidationError ошибка проверки поля формы записи
type ValidationError struct {
	Kind    ValidationErrorKind
	Field   string
	Message string
}

func newValidationError(kind ValidationErrorKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Field + ": " + e.Message
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RejectionError отказ в записи вместе с заново полученными занятыми слотами,
// чтобы клиент сразу показал актуальную сетку
type RejectionError struct {
	Err         error // ErrSlotNotAvailable или ErrServerRejected
	BookedSlots []time.Time
}

func (e *RejectionError) Error() string {
	return e.Err.Error()
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}
