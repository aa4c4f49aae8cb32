package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors of the auth protocol
var (
	// ErrMalformedAuthResponse - логин прошёл на транспортном уровне,
	// но тело ответа не содержит пригодной пары токенов
	ErrMalformedAuthResponse = errors.New("malformed auth response: no usable token pair")

	// ErrSessionExpired - обмен refresh token не удался; сессия завершена.
	// Эта ошибка не показывается как ошибка формы логина: она может прийти
	// на любой авторизованной операции и означает глобальный выход.
	ErrSessionExpired = errors.New("session expired")
)

// Kind классифицирует ошибку API для пользовательских сообщений
type Kind int

const (
	// KindUnknown - неклассифицированная ошибка
	KindUnknown Kind = iota
	// KindInvalidCredentials - HTTP 401
	KindInvalidCredentials
	// KindValidation - HTTP 400/422
	KindValidation
	// KindAccessDenied - HTTP 403
	KindAccessDenied
	// KindNotFound - HTTP 404
	KindNotFound
	// KindServiceUnavailable - HTTP >= 500
	KindServiceUnavailable
	// KindNetwork - запрос ушёл, ответа не было
	KindNetwork
)

// Error - типизированная ошибка транспортного уровня
type Error struct {
	err        error
	Message    string
	Kind       Kind
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// UserMessage возвращает текст для экрана входа.
// Категории различаются отдельными формулировками, см. таксономию ошибок.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "Invalid username or password."
	case KindValidation:
		return "Please check the entered data and try again."
	case KindAccessDenied:
		return "Access denied. Contact your administrator."
	case KindNotFound:
		return "The requested resource was not found."
	case KindServiceUnavailable:
		return "Server is unavailable. Please try again later."
	case KindNetwork:
		return "Network is unreachable. Check your connection."
	}
	return "Something went wrong. Please try again."
}

// classify строит типизированную ошибку по статус-коду ответа
func classify(status int, message string) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindInvalidCredentials
	case status == http.StatusForbidden:
		kind = KindAccessDenied
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = KindValidation
	case status >= http.StatusInternalServerError:
		kind = KindServiceUnavailable
	}

	if message == "" {
		message = http.StatusText(status)
	}

	return &Error{Kind: kind, StatusCode: status, Message: message}
}

// IsKind проверяет, что err является *Error указанной категории
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
