package create_appointment

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+7\(\d{3}\)\d{3}-\d{2}-\d{2}$`)

// ValidatePhone проверяет номер на формат +7(XXX)XXX-XX-XX
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return newValidationError(KindInvalidPhoneFormat, "client_phone",
			fmt.Sprintf("phone must match %s", domain.PhoneFormatHint))
	}
	return nil
}

// BuildAppointmentRequest проверяет форму и строит AppointmentRequest
//
// candidate должен нести часовой пояс барбершопа: перевод в UTC выполняется
// по смещению зоны в самом выбранном моменте, а не по смещению на момент отправки.
// step задаёт сетку слотов, candidate должен на неё попадать.
func BuildAppointmentRequest(service *domain.Service, candidate time.Time, step time.Duration, form Form) (*domain.AppointmentRequest, error) {
	if service == nil || service.ID <= 0 {
		return nil, newValidationError(KindMissingField, "service_id", "service is required")
	}

	valid, err := validateForm(candidate, step, form)
	if err != nil {
		return nil, err
	}

	return &domain.AppointmentRequest{
		ServiceID:   service.ID,
		ClientName:  valid.name,
		ClientPhone: valid.phone,
		StartsAt:    candidate.UTC(),
		Comment:     valid.comment,
		MasterID:    form.MasterID,
	}, nil
}

type validForm struct {
	name    string
	phone   string
	comment *string
}

// validateForm проверяет поля формы без обращения к Booking API
// Телефон проверяется как есть, без обрезки пробелов
func validateForm(candidate time.Time, step time.Duration, form Form) (*validForm, error) {
	if candidate.IsZero() {
		return nil, newValidationError(KindMissingField, "appointment_time", "appointment time is required")
	}

	name := strings.TrimSpace(form.ClientName)
	if name == "" {
		return nil, newValidationError(KindMissingField, "client_name", "client name is required")
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return nil, newValidationError(KindTooLong, "client_name",
			fmt.Sprintf("client name must be at most %d characters", domain.MaxClientNameLength))
	}

	if strings.TrimSpace(form.ClientPhone) == "" {
		return nil, newValidationError(KindMissingField, "client_phone", "client phone is required")
	}
	if err := ValidatePhone(form.ClientPhone); err != nil {
		return nil, err
	}

	var comment *string
	if form.Comment != nil {
		trimmed := strings.TrimSpace(*form.Comment)
		if utf8.RuneCountInString(trimmed) > domain.MaxCommentLength {
			return nil, newValidationError(KindTooLong, "comment",
				fmt.Sprintf("comment must be at most %d characters", domain.MaxCommentLength))
		}
		if trimmed != "" {
			comment = &trimmed
		}
	}

	if !isAligned(candidate, step) {
		return nil, newValidationError(KindInvalidTimeStep, "appointment_time",
			fmt.Sprintf("appointment time must be a multiple of %d minutes", int(step/time.Minute)))
	}

	return &validForm{name: name, phone: form.ClientPhone, comment: comment}, nil
}

// isAligned проверяет, что момент попадает на сетку step от начала дня по местному времени
func isAligned(candidate time.Time, step time.Duration) bool {
	if step <= 0 {
		return true
	}
	sinceMidnight := time.Duration(candidate.Hour())*time.Hour +
		time.Duration(candidate.Minute())*time.Minute +
		time.Duration(candidate.Second())*time.Second +
		time.Duration(candidate.Nanosecond())
	return sinceMidnight%step == 0
}

// validateRequest валидирует поля запроса, не относящиеся к форме
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return newValidationError(KindMissingField, "service_id", "service is required")
	}
	if req.Date.IsZero() {
		return newValidationError(KindMissingField, "date", "date is required")
	}
	if req.StartTime.IsZero() {
		return newValidationError(KindMissingField, "time", "time is required")
	}
	if req.IdempotencyKey != "" {
		if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
			return newValidationError(KindInvalidIdempotencyKey, "idempotency_key", "idempotency key must be a UUID")
		}
	}
	return nil
}
