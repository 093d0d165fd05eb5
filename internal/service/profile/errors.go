package profile

import "errors"

var (
	// ErrUnauthenticated возвращается, когда токен отсутствует или истёк
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRejected возвращается, когда Booking API отклонил изменение
	ErrRejected = errors.New("request rejected")

	// ErrNetwork возвращается, когда Booking API недоступен
	ErrNetwork = errors.New("booking api unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
