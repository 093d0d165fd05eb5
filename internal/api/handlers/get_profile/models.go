package get_profile

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/profile"
)

// ProfileResponse HTTP модель профиля
type ProfileResponse struct {
	User         UserResponse          `json:"user"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// UserResponse HTTP модель пользователя
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AppointmentResponse запись в истории пользователя
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName,omitempty"`
	Price       int64   `json:"price,omitempty"`
	StartsAt    string  `json:"startsAt"` // RFC3339 в UTC
	Status      string  `json:"status"`
	Comment     *string `json:"comment,omitempty"`
}

// UserFromDomain конвертирует пользователя в HTTP модель
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// FromProfile конвертирует профиль в HTTP модель
func FromProfile(p *profile.Profile) *ProfileResponse {
	appointments := make([]AppointmentResponse, 0, len(p.Appointments))
	for _, a := range p.Appointments {
		item := AppointmentResponse{
			ID:        a.ID,
			ServiceID: a.ServiceID,
			StartsAt:  a.StartsAt.UTC().Format(time.RFC3339),
			Status:    string(a.Status),
			Comment:   a.Comment,
		}
		if a.Service != nil {
			item.ServiceName = a.Service.Name
			item.Price = a.Service.Price
		}
		appointments = append(appointments, item)
	}

	return &ProfileResponse{
		User:         UserFromDomain(p.User),
		Appointments: appointments,
	}
}
