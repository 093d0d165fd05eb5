package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректных параметрах расписания
	ErrInvalidConfig = errors.New("availability: invalid engine config")
)

// Config параметры расписания барбершопа
type Config struct {
	Location        *time.Location
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	SlotStepMinutes int
	Holidays        []domain.Holiday
}

// Engine решает, можно ли предложить клиенту момент для записи
// Не хранит состояние между вызовами: результат зависит только от аргументов
type Engine struct {
	location *time.Location
	open     types.TimeString
	close    types.TimeString
	step     int
	holidays []domain.Holiday
}

// Slot момент сетки календаря с признаками доступности
type Slot struct {
	Start      time.Time // в часовом поясе барбершопа
	Booked     bool
	Selectable bool
}

// DayInfo сводка по календарному дню для подсветки в календаре
type DayInfo struct {
	Date               time.Time
	Holiday            *domain.Holiday
	HasBookedSlots     bool
	HasSelectableSlots bool
}

// NewEngine создает движок доступности слотов
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidConfig)
	}
	if cfg.OpenTime.IsZero() || cfg.CloseTime.IsZero() {
		return nil, fmt.Errorf("%w: open and close time are required", ErrInvalidConfig)
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return nil, fmt.Errorf("%w: open time %s is not before close time %s", ErrInvalidConfig, cfg.OpenTime, cfg.CloseTime)
	}
	if cfg.SlotStepMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive", ErrInvalidConfig)
	}

	holidays := cfg.Holidays
	if holidays == nil {
		holidays = domain.Holidays
	}

	return &Engine{
		location: cfg.Location,
		open:     cfg.OpenTime,
		close:    cfg.CloseTime,
		step:     cfg.SlotStepMinutes,
		holidays: holidays,
	}, nil
}

// Location возвращает часовой пояс барбершопа
func (e *Engine) Location() *time.Location {
	return e.location
}

// SlotStep возвращает шаг сетки слотов
func (e *Engine) SlotStep() time.Duration {
	return time.Duration(e.step) * time.Minute
}

// IsSlotSelectable проверяет, можно ли выбрать момент candidate для записи
//
// Отклоняется, если:
//   - день candidate праздничный (сравнение по дню и месяцу, весь день закрыт);
//   - candidate уже есть среди booked;
//   - candidate не лежит строго между открытием и закрытием своего дня;
//   - candidate сегодня, но не строго позже now;
//   - день candidate уже прошёл.
func (e *Engine) IsSlotSelectable(candidate time.Time, booked BookedSlots, now time.Time) bool {
	local := candidate.In(e.location)
	nowLocal := now.In(e.location)

	if _, ok := e.HolidayOn(local); ok {
		return false
	}

	if booked.Contains(candidate) {
		return false
	}

	opening := e.open.On(local, e.location)
	closing := e.close.On(local, e.location)
	withinHours := local.After(opening) && local.Before(closing)

	if isSameDay(local, nowLocal) {
		return local.After(nowLocal) && withinHours
	}

	if isDateInPast(local, nowLocal) {
		return false
	}

	return withinHours
}

// DayHasBookedSlots проверяет, есть ли в календарном дне day хотя бы один занятый слот
// Используется только для подсветки дня: наличие занятых слотов не означает, что день заполнен
func (e *Engine) DayHasBookedSlots(day time.Time, booked BookedSlots) bool {
	dayLocal := day.In(e.location)
	for _, instant := range booked.Instants() {
		if isSameDay(instant.In(e.location), dayLocal) {
			return true
		}
	}
	return false
}

// HolidayOn возвращает праздник, приходящийся на календарный день day
func (e *Engine) HolidayOn(day time.Time) (domain.Holiday, bool) {
	local := day.In(e.location)
	for _, h := range e.holidays {
		if h.Matches(local) {
			return h, true
		}
	}
	return domain.Holiday{}, false
}

// DaySlots строит сетку слотов дня от открытия до закрытия с шагом SlotStep
// Каждый слот помечен занятостью и доступностью для выбора
func (e *Engine) DaySlots(day time.Time, booked BookedSlots, now time.Time) []Slot {
	local := day.In(e.location)
	slots := make([]Slot, 0)

	for current := e.open; !current.IsAfter(e.close); {
		start := current.On(local, e.location)
		slots = append(slots, Slot{
			Start:      start,
			Booked:     booked.Contains(start),
			Selectable: e.IsSlotSelectable(start, booked, now),
		})

		next, err := current.AddMinutes(e.step)
		if err != nil {
			// Сетка упёрлась в полночь
			break
		}
		current = next
	}

	return slots
}

// Day возвращает сводку по календарному дню
func (e *Engine) Day(day time.Time, booked BookedSlots, now time.Time) DayInfo {
	local := day.In(e.location)
	y, m, d := local.Date()

	info := DayInfo{
		Date:           time.Date(y, m, d, 0, 0, 0, 0, e.location),
		HasBookedSlots: e.DayHasBookedSlots(local, booked),
	}

	if h, ok := e.HolidayOn(local); ok {
		info.Holiday = &h
		return info
	}

	for _, slot := range e.DaySlots(local, booked, now) {
		if slot.Selectable {
			info.HasSelectableSlots = true
			break
		}
	}

	return info
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
