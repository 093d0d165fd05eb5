package domain

// Значения расписания по умолчанию
const (
	DefaultOpenTime        = "09:00"
	DefaultCloseTime       = "20:45"
	DefaultSlotStepMinutes = 15
)

// Ограничения полей записи
const (
	MaxClientNameLength = 100
	MaxCommentLength    = 500
)

// Форматы даты и времени
const (
	TimeFormat      = "15:04"            // HH:MM
	DateFormat      = "2006-01-02"       // YYYY-MM-DD
	MonthFormat     = "2006-01"          // YYYY-MM
	LocalDateTime   = "2006-01-02T15:04" // выбор пользователя в календаре без зоны
	PhoneFormatHint = "+7(XXX)XXX-XX-XX"
)
