package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модель запроса календаря на месяц
type Request struct {
	ServiceID int64
	Year      int
	Month     time.Month
}

// Response модель календаря месяца
type Response struct {
	ServiceID int64
	Year      int
	Month     time.Month
	Days      []Day
}

// Day сводка по дню для подсветки в календаре
type Day struct {
	Date               time.Time
	Holiday            *domain.Holiday
	HasBookedSlots     bool // только подсветка, день может быть свободен частично
	HasSelectableSlots bool
}
