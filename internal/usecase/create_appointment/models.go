package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Token          string // токен Booking API из сессии
	IdempotencyKey string // UUID, если пустой, генерируется

	ServiceID int64
	Date      time.Time        // учитываются только год, месяц и день
	StartTime types.TimeString // время по часовому поясу барбершопа

	ClientName  string
	ClientPhone string
	Comment     *string
	MasterID    *int64
}

// Form поля формы записи, из которых строится AppointmentRequest
type Form struct {
	ClientName  string
	ClientPhone string
	Comment     *string
	MasterID    *int64
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID  int64
	IdempotencyKey string
	ServiceID      int64
	StartsAt       time.Time // UTC
	// Replayed true, если запись уже была создана ранее с тем же ключом
	Replayed bool
}

const (
	outcomeSucceeded        = "succeeded"
	outcomeReplayed         = "replayed"
	outcomeValidationFailed = "validation_failed"
	outcomeUnauthenticated  = "unauthenticated"
	outcomeSlotUnavailable  = "slot_unavailable"
	outcomeRejected         = "rejected"
	outcomeInProgress       = "in_progress"
	outcomeNetwork          = "network"
	outcomeError            = "error"
)
