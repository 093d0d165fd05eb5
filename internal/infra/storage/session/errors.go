package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.storage: session not found")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("session.storage: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации сессии
	ErrDecode = errors.New("session.storage: failed to decode session")

	// ErrStorage возвращается при ошибке обращения к хранилищу
	ErrStorage = errors.New("session.storage: storage error")
)
