package domain

import "time"

// AppointmentStatus статус выполнения записи
type AppointmentStatus string

const (
	StatusNotCompleted AppointmentStatus = "not_completed"
	StatusCompleted    AppointmentStatus = "completed"
)

// IsCompleted возвращает true, если услуга оказана
func (s AppointmentStatus) IsCompleted() bool {
	return s == StatusCompleted
}

// AppointmentRequest проверенные данные для создания записи
// Существует только до отправки в Booking API
type AppointmentRequest struct {
	ServiceID   int64
	ClientName  string
	ClientPhone string
	// StartsAt выбранный момент в UTC
	StartsAt time.Time
	Comment  *string
	MasterID *int64
}

// Appointment запись на услугу, как её возвращает Booking API
type Appointment struct {
	ID        int64
	ServiceID int64
	StartsAt  time.Time
	Status    AppointmentStatus

	ClientName  string
	ClientPhone string
	Comment     *string
	MasterID    *int64

	// Service заполнен только в истории записей пользователя
	Service *Service
}

// User пользователь Booking API
type User struct {
	ID       int64
	Username string
	Email    string
	Role     string
}
