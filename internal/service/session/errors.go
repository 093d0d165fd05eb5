package session

import "errors"

var (
	// ErrInvalidInput возвращается при пустых email или пароле
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidCredentials возвращается, когда Booking API отклонил email и пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRegistrationRejected возвращается, когда Booking API отклонил регистрацию
	// Например, email уже занят
	ErrRegistrationRejected = errors.New("registration rejected")

	// ErrNetwork возвращается, когда Booking API недоступен
	ErrNetwork = errors.New("booking api unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
