package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookedSlots множество уже занятых моментов для одной услуги
// Моменты нормализуются в UTC с точностью до секунды, поэтому
// 11:00:00.000Z и 14:00:00+03:00 считаются одним и тем же слотом
type BookedSlots struct {
	set map[int64]struct{}
}

// NewBookedSlots строит множество занятых слотов
func NewBookedSlots(instants []time.Time) BookedSlots {
	set := make(map[int64]struct{}, len(instants))
	for _, t := range instants {
		set[normalize(t)] = struct{}{}
	}
	return BookedSlots{set: set}
}

// Contains проверяет, занят ли момент t
func (b BookedSlots) Contains(t time.Time) bool {
	_, ok := b.set[normalize(t)]
	return ok
}

// Len возвращает количество занятых слотов
func (b BookedSlots) Len() int {
	return len(b.set)
}

// Instants возвращает занятые моменты в UTC по возрастанию
func (b BookedSlots) Instants() []time.Time {
	result := make([]time.Time, 0, len(b.set))
	for sec := range b.set {
		result = append(result, time.Unix(sec, 0).UTC())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}

func normalize(t time.Time) int64 {
	return t.UTC().Truncate(time.Second).Unix()
}

// BookedFromAppointments собирает занятые слоты из записей на услугу
// Статус записи не учитывается: выполненная запись тоже занимает момент
func BookedFromAppointments(appointments []*domain.Appointment) BookedSlots {
	instants := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || a.StartsAt.IsZero() {
			continue
		}
		instants = append(instants, a.StartsAt)
	}
	return NewBookedSlots(instants)
}
