package update_profile

import "github.com/m04kA/SMC-BarberBooking/internal/service/profile"

// UpdateProfileRequest HTTP модель изменения профиля, отсутствующие поля не меняются
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProfileRequest) ToServiceRequest() *profile.UpdateRequest {
	return &profile.UpdateRequest{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}
