package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/covspace/site/internal/pkg/log"
)

// Timeout ограничивает время обработки запроса (и всех загрузок из CMS внутри него).
// Более ранний deadline родительского контекста сохраняется. d<=0 выключает мидлвар.
// Если deadline истёк до возврата обработчика, пишется request_timeout.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logctx.From(ctx).LogAttrs(ctx, slog.LevelWarn, "request_timeout",
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d),
				)
			}
		})
	}
}
