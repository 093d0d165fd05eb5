package domain

import "time"

// Holiday фиксированный ежегодный праздник
// Год не хранится: праздник повторяется каждый год в тот же день
type Holiday struct {
	Day   int
	Month time.Month
	Name  string
}

// Matches проверяет, приходится ли праздник на календарный день date
func (h Holiday) Matches(date time.Time) bool {
	return date.Day() == h.Day && date.Month() == h.Month
}

// Holidays праздничные дни, в которые барбершоп не работает
var Holidays = []Holiday{
	{Day: 1, Month: time.January, Name: "Новый год"},
	{Day: 7, Month: time.January, Name: "Рождество Христово"},
	{Day: 8, Month: time.March, Name: "Международный женский день"},
	{Day: 1, Month: time.May, Name: "Праздник Весны и Труда"},
	{Day: 9, Month: time.May, Name: "День Победы"},
	{Day: 12, Month: time.June, Name: "День России"},
	{Day: 4, Month: time.November, Name: "День народного единства"},
}
