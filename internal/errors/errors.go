// errors стандартизирует ответы об ошибках HTTP-слоя сайта.
// На вход он принимает ошибку загрузки контента (CMS или доменную),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Используется и HTML-страницами (только статус), и JSON-ответами (WriteError).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/covspace/site/internal/cms"
	"github.com/covspace/site/internal/content"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrRateLimited — превышен лимит запросов клиента.
	ErrRateLimited = stderrors.New("rate limited")
	// ErrUpstreamUnavailable — CMS недоступна на уровне соединения (прокси /api).
	ErrUpstreamUnavailable = stderrors.New("upstream unavailable")
)

// APIError — единый формат JSON-ошибки.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - доменные и CMS-ошибки маппятся через base();
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// base — маппинг ошибка -> HTTP/код/сообщение:
//   - content.ErrNotFound -> 404
//   - content.ErrMissingSlug -> 400
//   - ErrRateLimited -> 429
//   - context.Canceled -> 499 (клиент закрыл соединение)
//   - context.DeadlineExceeded -> 504
//   - content.ErrLoadFailed / ErrUpstreamUnavailable / cms.ErrUnavailable / cms.ErrRequestFailed / cms.ErrMalformedResponse -> 502
//   - прочее -> 500/internal
//
// Порядок важен: ErrLoadFailed оборачивает исходную ошибку, и таймаут под ним
// должен дать 504, а не 502.
func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, content.ErrMissingSlug):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "resource_exhausted", "too many requests"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, content.ErrLoadFailed),
		stderrors.Is(err, ErrUpstreamUnavailable),
		stderrors.Is(err, cms.ErrUnavailable),
		stderrors.Is(err, cms.ErrRequestFailed),
		stderrors.Is(err, cms.ErrMalformedResponse):
		return http.StatusBadGateway, "bad_gateway", "content source unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
