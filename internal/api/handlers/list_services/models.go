package list_services

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// ServiceResponse HTTP модель услуги
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromDomain конвертирует услугу в HTTP модель
func FromDomain(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}
