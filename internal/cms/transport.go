package cms

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/covspace/site/internal/metrics"
	logctx "github.com/covspace/site/internal/pkg/log"
)

// CtxKey — ключи контекста, которые читает транспорт клиента.
type CtxKey string

// CtxRequestID — id входящего запроса сайта; пробрасывается в CMS как X-Request-Id.
const CtxRequestID CtxKey = "request_id"

// Interceptor оборачивает http.RoundTripper.
type Interceptor func(next http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// chain применяет интерсепторы так, что первый в списке — внешний.
func chain(base http.RoundTripper, ics ...Interceptor) http.RoundTripper {
	rt := base
	for i := len(ics) - 1; i >= 0; i-- {
		rt = ics[i](rt)
	}

	return rt
}

// WithMetadata добавляет в исходящий запрос:
//   - X-Request-Id (если есть в контексте и не задан явно);
//   - User-Agent (если передан параметром).
func WithMetadata(userAgent string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			rid, _ := req.Context().Value(CtxRequestID).(string)
			needRID := rid != "" && req.Header.Get("X-Request-Id") == ""

			if !needRID && userAgent == "" {
				return next.RoundTrip(req)
			}

			req = req.Clone(req.Context())
			if needRID {
				req.Header.Set("X-Request-Id", rid)
			}
			if userAgent != "" {
				req.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(req)
		})
	}
}

// WithRequestTimeout навешивает таймаут d на запрос, если у контекста ещё нет дедлайна.
//
// Контракт:
//  1. d <= 0 — запрос уходит без изменений;
//  2. у ctx уже есть deadline — он не переопределяется;
//  3. иначе — context.WithTimeout; cancel вызывается при ошибке или при Close тела ответа.
func WithRequestTimeout(d time.Duration) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if _, ok := req.Context().Deadline(); ok {
				return next.RoundTrip(req)
			}

			ctx, cancel := context.WithTimeout(req.Context(), d)
			resp, err := next.RoundTrip(req.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// Logging пишет одну запись "cms" на каждый исходящий запрос.
// Если X-Request-Id не задан — генерирует UUID, добавляет его в запрос и в запись лога.
// Тело запроса и ответа не логируется.
func Logging() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			l := logctx.From(req.Context())

			// Пришедший id уже есть в логгере запроса (middleware.Logging).
			if req.Header.Get("X-Request-Id") == "" {
				rid := uuid.NewString()
				req = req.Clone(req.Context())
				req.Header.Set("X-Request-Id", rid)
				l = l.With(slog.String("request_id", rid))
			}

			l = l.With(
				slog.String("method", req.Method),
				slog.String("endpoint", req.URL.Path),
				slog.String("target", req.URL.Host),
			)

			resp, err := next.RoundTrip(req)
			if err != nil {
				l.Warn("cms",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("cms",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}

// Instrument считает запросы и их длительность. m == nil — no-op.
func Instrument(m *metrics.Metrics) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if m == nil {
			return next
		}

		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			code := "error"
			if err == nil {
				code = strconv.Itoa(resp.StatusCode)
			}

			m.CMSRequests.WithLabelValues(req.URL.Path, code).Inc()
			m.CMSDuration.WithLabelValues(req.URL.Path).Observe(time.Since(start).Seconds())

			return resp, err
		})
	}
}
