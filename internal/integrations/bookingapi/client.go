package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// IdempotencyHeader заголовок с клиентским идентификатором запроса
// Booking API может по нему отбросить повторную запись
const IdempotencyHeader = "Idempotency-Key"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer принимает длительность запросов к API (метрики)
type Observer interface {
	ObserveBookingAPI(operation, result string, duration time.Duration)
}

// Client клиент для работы с Booking API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр клиента Booking API
// Повторов нет: ошибка возвращается вызывающему один раз
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// WithObserver подключает сбор метрик запросов
func (c *Client) WithObserver(observer Observer) *Client {
	c.observer = observer
	return c
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	var service Service
	path := fmt.Sprintf("/services/%d", serviceID)
	if err := c.do(ctx, "get_service", http.MethodGet, path, "", nil, nil, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// ListServices получает каталог услуг
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.do(ctx, "list_services", http.MethodGet, "/services/", "", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ListAppointments получает записи на услугу (для построения занятых слотов)
func (c *Client) ListAppointments(ctx context.Context, serviceID int64) ([]Appointment, error) {
	var appointments []Appointment
	path := "/appointments/?service_id=" + strconv.FormatInt(serviceID, 10)
	if err := c.do(ctx, "list_appointments", http.MethodGet, path, "", nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListMasters получает список мастеров
func (c *Client) ListMasters(ctx context.Context) ([]Master, error) {
	var masters []Master
	if err := c.do(ctx, "list_masters", http.MethodGet, "/masters/", "", nil, nil, &masters); err != nil {
		return nil, err
	}
	return masters, nil
}

// CreateAppointment создает запись
// idempotencyKey передаётся в заголовке Idempotency-Key
func (c *Client) CreateAppointment(ctx context.Context, token, idempotencyKey string, req *CreateAppointmentRequest) (*Appointment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if idempotencyKey != "" {
		headers[IdempotencyHeader] = idempotencyKey
	}

	var created Appointment
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/appointments/", token, headers, bytes.NewReader(body), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login получает токен по email и паролю
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

	var token Token
	if err := c.do(ctx, "login", http.MethodPost, "/login/", "", headers, strings.NewReader(form.Encode()), &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}
	return &token, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	headers := map[string]string{"Content-Type": "application/json"}

	var user User
	if err := c.do(ctx, "register", http.MethodPost, "/register/", "", headers, bytes.NewReader(body), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCurrentUser обновляет имя, email или пароль текущего пользователя
func (c *Client) UpdateCurrentUser(ctx context.Context, token string, req *UpdateUserRequest) (*User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	headers := map[string]string{"Content-Type": "application/json"}

	var user User
	if err := c.do(ctx, "update_current_user", http.MethodPatch, "/users/me", token, headers, bytes.NewReader(body), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentUser получает текущего пользователя по токену
func (c *Client) GetCurrentUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, "get_current_user", http.MethodGet, "/users/me", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAppointmentHistory получает историю записей текущего пользователя
func (c *Client) GetAppointmentHistory(ctx context.Context, token string) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.do(ctx, "get_appointment_history", http.MethodGet, "/appointments/history/", token, nil, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// DeleteAppointment удаляет запись
func (c *Client) DeleteAppointment(ctx context.Context, token string, appointmentID int64) error {
	path := fmt.Sprintf("/appointments/%d", appointmentID)
	return c.do(ctx, "delete_appointment", http.MethodDelete, path, token, nil, nil, nil)
}

// do выполняет запрос и разбирает ответ в out (если out != nil)
func (c *Client) do(
	ctx context.Context,
	operation, method, path, token string,
	headers map[string]string,
	body io.Reader,
	out interface{},
) (err error) {
	started := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBookingAPI(operation, resultLabel(err), time.Since(started))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("BookingAPI %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthenticated
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusConflict ||
		resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readDetail(resp.Body))
	case resp.StatusCode >= 500:
		c.log.Error("BookingAPI %s %s returned %d", method, path, resp.StatusCode)
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, readDetail(resp.Body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readDetail(resp.Body))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readDetail достаёт detail из тела ошибки FastAPI либо возвращает тело как есть
func readDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && len(errResp.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
			return detail
		}
		return string(errResp.Detail)
	}
	return strings.TrimSpace(string(raw))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
