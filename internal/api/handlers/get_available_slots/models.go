package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string           `json:"date"`
	ServiceID      int64            `json:"serviceId"`
	ServiceName    string           `json:"serviceName"`
	Holiday        *HolidayResponse `json:"holiday,omitempty"`
	HasBookedSlots bool             `json:"hasBookedSlots"`
	Slots          []AvailableSlot  `json:"slots"`
}

// HolidayResponse праздник, из-за которого день закрыт
type HolidayResponse struct {
	Name string `json:"name"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime  string `json:"startTime"` // HH:MM по часовому поясу барбершопа
	StartsAt   string `json:"startsAt"`  // RFC3339 в UTC
	Booked     bool   `json:"booked"`
	Selectable bool   `json:"selectable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:  slot.StartTime.String(),
			StartsAt:   slot.StartsAt.UTC().Format(time.RFC3339),
			Booked:     slot.Booked,
			Selectable: slot.Selectable,
		}
	}

	result := &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		HasBookedSlots: resp.HasBookedSlots,
		Slots:          slots,
	}
	if resp.Service != nil {
		result.ServiceID = resp.Service.ID
		result.ServiceName = resp.Service.Name
	}
	if resp.Holiday != nil {
		result.Holiday = &HolidayResponse{Name: resp.Holiday.Name}
	}

	return result
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Из даты берутся только год, месяц и день
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
