package cms

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed — CMS ответила не-2xx статусом. Конкретика — в *RequestFailedError.
	ErrRequestFailed = errors.New("cms request failed")
	// ErrMalformedResponse — тело ответа не JSON или в нём нет поля data.
	ErrMalformedResponse = errors.New("cms malformed response")
	// ErrUnavailable — CMS недоступна на уровне транспорта (отказ соединения, DNS, TLS).
	ErrUnavailable = errors.New("cms unavailable")
	// ErrInvalidBaseURL — базовый адрес CMS не абсолютный http(s) URL.
	ErrInvalidBaseURL = errors.New("cms invalid base url")
)

// RequestFailedError несёт HTTP-статус неуспешного ответа.
// Тело ответа не разбирается.
type RequestFailedError struct {
	Endpoint   string
	Status     int
	StatusText string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API error: %s: %d %s", e.Endpoint, e.Status, e.StatusText)
}

// Is позволяет проверять errors.Is(err, ErrRequestFailed).
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}
