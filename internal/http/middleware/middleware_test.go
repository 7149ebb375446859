package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/covspace/site/internal/cms"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O, чтобы не паниковать в тестах.
type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errEnvelope struct {
	Error apiError `json:"error"`
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	chain := Chain(final, m1, m2)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenID string
	var seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		if v := r.Context().Value(cms.CtxRequestID); v != nil {
			seenCtxID, _ = v.(string)
		}
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	_, err := uuid.Parse(respID)
	require.NoError(t, err)

	require.Equal(t, respID, seenID)
	require.Equal(t, respID, seenCtxID)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"
	var seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Context().Value(cms.CtxRequestID); v != nil {
			seenCtxID, _ = v.(string)
		}
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set("X-Request-Id", given)
	chain.ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get("X-Request-Id"))
	require.Equal(t, given, seenCtxID)
}

func TestRequestID_ReplacesUnsafe(t *testing.T) {
	for _, given := range []string{"bad id with spaces", "line\nbreak", strings.Repeat("x", maxRequestIDLen+1)} {
		rr := httptest.NewRecorder()
		req := makeReq("/rid3")
		req.Header.Set("X-Request-Id", given)

		Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), RequestID()).ServeHTTP(rr, req)

		got := rr.Header().Get("X-Request-Id")
		require.NotEqual(t, given, got)
		_, err := uuid.Parse(got)
		require.NoError(t, err)
	}
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool
	var left time.Duration

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		hasDeadline = ok
		if ok {
			left = time.Until(dl)
		}
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(50*time.Millisecond))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/timeout"))

	require.True(t, hasDeadline)
	require.Greater(t, left, time.Duration(0))
}

func TestTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, _ := r.Context().Deadline()
		childDL = dl
		w.WriteHeader(http.StatusOK)
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := makeReq("/timeout2").WithContext(parent)

	chain := Chain(h, Timeout(1*time.Second)) // больше, чем у родителя
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestTimeout_ZeroIsNoop(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Chain(h, Timeout(0)).ServeHTTP(httptest.NewRecorder(), makeReq("/t0"))
	require.False(t, hasDeadline)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	chain := Chain(panicHandler, Recover())
	rr := httptest.NewRecorder()

	chain.ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.NotContains(t, rr.Body.String(), "boom")
}

func TestRecover_RepanicsOnAbortHandler(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Chain(h, Recover()).ServeHTTP(httptest.NewRecorder(), makeReq("/abort"))
	})
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Не вызываем WriteHeader — статус должен стать 200 после Write.
		_, _ = w.Write([]byte("0123456789")) // 10 байт
	})

	// Порядок важен: RequestID до Logging, чтобы id попал в attrs лога.
	handler := Chain(final, RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set("X-Request-Id", rid)

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	method, _ := h.attrs["method"].(string)
	path, _ := h.attrs["path"].(string)
	status, _ := h.attrs["status"].(int64) // slog хранит числа как int64
	bytes, _ := h.attrs["bytes"].(int64)
	ridAttr, _ := h.attrs["request_id"].(string)

	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "/log", path)
	require.EqualValues(t, http.StatusOK, status)
	require.EqualValues(t, 10, bytes)
	require.Equal(t, rid, ridAttr)

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

// Пустой ответ без WriteHeader — 200; 5xx логируется как Warn.
func TestLogging_StatusDefaultsAndLevel(t *testing.T) {
	h := &capHandler{}

	Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), Logging(slog.New(h))).
		ServeHTTP(httptest.NewRecorder(), makeReq("/empty"))
	require.EqualValues(t, http.StatusOK, h.attrs["status"])

	Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }), Logging(slog.New(h))).
		ServeHTTP(httptest.NewRecorder(), makeReq("/bad"))
	require.EqualValues(t, http.StatusBadGateway, h.attrs["status"])
	require.Equal(t, slog.LevelWarn, h.lastLvl)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := newStatusWriter(rr)

	_, _ = sw.Write([]byte("abcd")) // 4 байта

	require.Equal(t, http.StatusOK, sw.status) // статус умолчаний — 200
	require.Equal(t, 4, sw.count)
}

func TestRateLimit_BlocksOverBurst(t *testing.T) {
	chain := Chain(okHandler(), RequestID(), RateLimit(0.001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, makeReq("/"))
		codes = append(codes, rr.Code)

		if rr.Code == http.StatusTooManyRequests {
			var env errEnvelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			require.Equal(t, "resource_exhausted", env.Error.Code)
			require.NotEmpty(t, env.Error.RequestID)
			require.Equal(t, "1", rr.Header().Get("Retry-After"))
		}
	}

	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

// Бакеты у разных IP независимы.
func TestRateLimit_PerClientIP(t *testing.T) {
	chain := Chain(okHandler(), RateLimit(0.001, 1))

	a := makeReq("/")
	b := makeReq("/")
	b.RemoteAddr = "10.0.0.2:4000"

	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, a)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	chain.ServeHTTP(rr, b)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	chain.ServeHTTP(rr, a)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestRateLimit_DisabledWhenRPSZero(t *testing.T) {
	chain := Chain(okHandler(), RateLimit(0, 0))

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, makeReq("/"))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestLimiterStore_SweepsIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newLimiterStore(1, 1)
	s.now = func() time.Time { return now }

	s.get("1.1.1.1")
	require.Len(t, s.limiters, 1)

	now = now.Add(limiterIdle + sweepEvery + time.Second)
	s.get("2.2.2.2")

	require.Len(t, s.limiters, 1)
	_, ok := s.limiters["2.2.2.2"]
	require.True(t, ok)
}

func TestClientIP(t *testing.T) {
	req := makeReq("/")
	require.Equal(t, "127.0.0.1", clientIP(req))

	req.RemoteAddr = "garbage"
	require.Equal(t, "garbage", clientIP(req))
}

func TestTimeout_LogsWhenDeadlineExceeded(t *testing.T) {
	h := &capHandler{}

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	Chain(slow, Logging(slog.New(h)), Timeout(10*time.Millisecond)).
		ServeHTTP(httptest.NewRecorder(), makeReq("/slow"))

	// Последняя запись — итоговая "http"; request_timeout идёт перед ней.
	require.Equal(t, 2, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.EqualValues(t, http.StatusGatewayTimeout, h.attrs["status"])
}

func TestLogging_RoutePattern(t *testing.T) {
	h := &capHandler{}

	r := chi.NewRouter()
	r.Use(Logging(slog.New(h)))
	r.Get("/blogs/{slug}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), makeReq("/blogs/hello-world"))

	require.Equal(t, "/blogs/{slug}", h.attrs["route"])
	require.Equal(t, "/blogs/hello-world", h.attrs["path"])
}

func TestRecover_LogsStack(t *testing.T) {
	h := &capHandler{}

	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("render failed") })
	Chain(panicky, Logging(slog.New(h)), Recover()).ServeHTTP(httptest.NewRecorder(), makeReq("/p"))

	// panic + итоговая запись http со статусом 500.
	require.Equal(t, 2, h.count)
	require.EqualValues(t, http.StatusInternalServerError, h.attrs["status"])
	require.Equal(t, slog.LevelWarn, h.lastLvl)
}
