package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на получение сетки слотов дня
type Request struct {
	ServiceID int64
	Date      time.Time // учитываются только год, месяц и день
}

// Response модель ответа с сеткой слотов дня
type Response struct {
	Date           time.Time // полночь дня в часовом поясе барбершопа
	Service        *domain.Service
	Holiday        *domain.Holiday
	HasBookedSlots bool
	Slots          []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime  types.TimeString // время по часовому поясу барбершопа, например "10:15"
	StartsAt   time.Time        // тот же момент в UTC
	Booked     bool
	Selectable bool
}
