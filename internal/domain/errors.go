package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport - сеть недоступна, таймаут, обрыв соединения.
	ErrTransport = errors.New("order api unreachable")
	// ErrServer - ответ API вне диапазона 2xx (см. ServerError).
	ErrServer = errors.New("order api error")
	// ErrNotFound - заказа нет в свежем списке перед изменением.
	ErrNotFound = errors.New("order not found")
	// ErrAuthAcquisition - токен не удалось получить молча; запрос идёт без авторизации.
	ErrAuthAcquisition = errors.New("silent token acquisition failed")
	// ErrMutationInFlight - по этому заказу уже выполняется изменение.
	ErrMutationInFlight = errors.New("mutation already in flight")
	// ErrUnknownStatus - статус вне закрытого множества там, где он переносится как есть.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrInvalidChange - событие изменения не разобрано; повторять бессмысленно.
	ErrInvalidChange = errors.New("invalid change event")
)

// ServerError - ответ API с кодом вне 2xx.
type ServerError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is - errors.Is(err, ErrServer) для любого ServerError.
func (e *ServerError) Is(target error) bool { return target == ErrServer }
