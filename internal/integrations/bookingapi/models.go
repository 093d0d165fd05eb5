package bookingapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Service модель услуги из Booking API
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Duration    int    `json:"duration"` // минуты
}

// ToDomain конвертирует услугу в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.Duration,
	}
}

// Appointment модель записи из Booking API
type Appointment struct {
	ID              int64    `json:"id"`
	ServiceID       int64    `json:"service_id"`
	AppointmentTime APITime  `json:"appointment_time"`
	ClientName      string   `json:"client_name,omitempty"`
	ClientPhone     string   `json:"client_phone,omitempty"`
	Status          string   `json:"status,omitempty"`
	Comment         *string  `json:"comment,omitempty"`
	MasterID        *int64   `json:"master_id,omitempty"`
	Service         *Service `json:"service,omitempty"`
}

// ToDomain конвертирует запись в доменную модель
func (a *Appointment) ToDomain() *domain.Appointment {
	result := &domain.Appointment{
		ID:          a.ID,
		ServiceID:   a.ServiceID,
		StartsAt:    a.AppointmentTime.Time,
		Status:      domain.AppointmentStatus(a.Status),
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		Comment:     a.Comment,
		MasterID:    a.MasterID,
	}
	if result.Status == "" {
		result.Status = domain.StatusNotCompleted
	}
	if a.Service != nil {
		result.Service = a.Service.ToDomain()
		if result.ServiceID == 0 {
			result.ServiceID = a.Service.ID
		}
	}
	return result
}

// CreateAppointmentRequest тело POST /appointments
type CreateAppointmentRequest struct {
	ServiceID       int64   `json:"service_id"`
	ClientName      string  `json:"client_name"`
	ClientPhone     string  `json:"client_phone"`
	AppointmentTime string  `json:"appointment_time"` // ISO-8601 в UTC
	Comment         *string `json:"comment,omitempty"`
	MasterID        *int64  `json:"master_id,omitempty"`
}

// NewCreateAppointmentRequest строит тело запроса из доменной модели
func NewCreateAppointmentRequest(req *domain.AppointmentRequest) *CreateAppointmentRequest {
	return &CreateAppointmentRequest{
		ServiceID:       req.ServiceID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		AppointmentTime: req.StartsAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		Comment:         req.Comment,
		MasterID:        req.MasterID,
	}
}

// Master модель мастера
type Master struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToDomain конвертирует мастера в доменную модель
func (m *Master) ToDomain() *domain.Master {
	return &domain.Master{ID: m.ID, Username: m.Username, Email: m.Email}
}

// User модель пользователя
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ToDomain конвертирует пользователя в доменную модель
func (u *User) ToDomain() *domain.User {
	return &domain.User{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// RegisterRequest тело POST /register/
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest тело PATCH /users/me, пустые поля не меняются
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Token ответ POST /login/
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse модель ошибки Booking API
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// APITime момент времени в формате Booking API
// Бэкенд хранит время без зоны, такие значения считаются UTC
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// UnmarshalJSON разбирает время с зоной или без неё
func (t *APITime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("appointment time must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)

	for _, layout := range apiTimeLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported appointment time format %q", raw)
}

// MarshalJSON сериализует время в UTC ISO-8601
func (t APITime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
