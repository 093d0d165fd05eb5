package bookingapi

import "errors"

var (
	// ErrNotFound возвращается, когда ресурс не найден (404)
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrUnauthenticated возвращается при отсутствующем или истёкшем токене (401/403)
	ErrUnauthenticated = errors.New("bookingapi client: unauthenticated")

	// ErrRejected возвращается, когда Booking API отклонил запрос (400/409/422)
	// Например, слот успели занять или услугу удалили
	ErrRejected = errors.New("bookingapi client: request rejected")

	// ErrNetwork возвращается при таймауте, обрыве соединения или недоступности API (5xx)
	ErrNetwork = errors.New("bookingapi client: network error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")
)
