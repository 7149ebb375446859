package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/covspace/site/internal/cms"
)

// maxRequestIDLen ограничивает длину принятого от клиента X-Request-Id.
const maxRequestIDLen = 128

// RequestID проставляет X-Request-Id в ответ, в заголовки запроса и в контекст
// (ключ cms.CtxRequestID читает metadata-транспорт клиента CMS).
// Входящий id принимается, если он непустой, не длиннее maxRequestIDLen
// и состоит из печатных ASCII-символов; иначе генерируется UUID v4.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if !validRequestID(id) {
				id = uuid.NewString()
				// errors.WriteError берёт id из заголовков запроса.
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)

			ctx := context.WithValue(r.Context(), cms.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}

	for i := 0; i < len(id); i++ {
		if c := id[i]; c <= ' ' || c > '~' {
			return false
		}
	}

	return true
}
