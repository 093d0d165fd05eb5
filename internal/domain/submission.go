package domain

import "time"

// SubmissionStatus состояние отправки записи в Booking API
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionCompleted SubmissionStatus = "completed"
)

// Submission запись журнала отправок по ключу идемпотентности
type Submission struct {
	Key           string
	ServiceID     int64
	StartsAt      time.Time // выбранный момент в UTC
	Status        SubmissionStatus
	AppointmentID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCompleted возвращает true, если запись уже создана в Booking API
func (s *Submission) IsCompleted() bool {
	return s.Status == SubmissionCompleted && s.AppointmentID != nil
}

// Matches проверяет, что ключ зарезервирован за той же услугой и тем же моментом
func (s *Submission) Matches(serviceID int64, startsAt time.Time) bool {
	if s.ServiceID != serviceID {
		return false
	}
	return s.StartsAt.IsZero() || s.StartsAt.Equal(startsAt)
}
