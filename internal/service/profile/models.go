package profile

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Profile пользователь и история его записей
type Profile struct {
	User         *domain.User
	Appointments []*domain.Appointment // от новых к старым
}

// UpdateRequest изменения профиля, nil поля не меняются
type UpdateRequest struct {
	Username *string
	Email    *string
	Password *string
}

func (r *UpdateRequest) isEmpty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil
}
