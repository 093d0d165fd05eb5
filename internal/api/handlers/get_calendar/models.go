package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_calendar"
)

// CalendarResponse HTTP модель календаря на месяц
type CalendarResponse struct {
	ServiceID int64         `json:"serviceId"`
	Month     string        `json:"month"` // YYYY-MM
	Days      []DayResponse `json:"days"`
}

// DayResponse подсветка дня в календаре
type DayResponse struct {
	Date               string `json:"date"`
	Holiday            string `json:"holiday,omitempty"`
	HasBookedSlots     bool   `json:"hasBookedSlots"`
	HasSelectableSlots bool   `json:"hasSelectableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DayResponse{
			Date:               d.Date.Format(domain.DateFormat),
			HasBookedSlots:     d.HasBookedSlots,
			HasSelectableSlots: d.HasSelectableSlots,
		}
		if d.Holiday != nil {
			days[i].Holiday = d.Holiday.Name
		}
	}

	return &CalendarResponse{
		ServiceID: resp.ServiceID,
		Month:     time.Date(resp.Year, resp.Month, 1, 0, 0, 0, 0, time.UTC).Format(domain.MonthFormat),
		Days:      days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметра month
func ToUseCaseRequest(serviceID int64, monthStr string) (*getCalendar.Request, error) {
	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		return nil, err
	}

	return &getCalendar.Request{
		ServiceID: serviceID,
		Year:      month.Year(),
		Month:     month.Month(),
	}, nil
}
