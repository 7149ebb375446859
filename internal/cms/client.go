// cms — HTTP-клиент к REST API контент-системы.
//
// Все ответы CMS имеют вид {"data": T}; клиент разворачивает конверт и
// возвращает data. Ретраев и кеша нет.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/covspace/site/internal/metrics"
)

const defaultUserAgent = "covspace-site"

// Client — клиент CMS. Базовый адрес фиксируется при создании.
type Client struct {
	baseURL string
	http    *http.Client
}

type clientOptions struct {
	base      http.RoundTripper
	timeout   time.Duration
	userAgent string
	metrics   *metrics.Metrics
}

// Option настраивает Client.
type Option func(*clientOptions)

// WithTransport задаёт нижележащий RoundTripper (по умолчанию http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.base = rt }
}

// WithTimeout задаёт таймаут одного запроса. d <= 0 — без таймаута.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithUserAgent переопределяет User-Agent исходящих запросов. Пустая строка игнорируется.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithMetrics включает учёт запросов в Prometheus.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// New создаёт клиент для baseURL (например, http://localhost:3000/api).
func New(baseURL string, opts ...Option) (*Client, error) {
	const op = "cms.New"

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidBaseURL, baseURL)
	}

	o := clientOptions{
		base:      http.DefaultTransport,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Цепочка: metadata -> timeout -> logging -> metrics -> base.
	rt := chain(o.base,
		WithMetadata(o.userAgent),
		WithRequestTimeout(o.timeout),
		Logging(),
		Instrument(o.metrics),
	)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: rt},
	}, nil
}

// BaseURL возвращает базовый адрес CMS без завершающего слеша.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) endpointURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	return c.baseURL + endpoint
}

type requestOptions struct {
	method string
	header http.Header
}

// RequestOption переопределяет параметры одного запроса.
type RequestOption func(*requestOptions)

// WithMethod задаёт HTTP-метод (по умолчанию GET).
func WithMethod(method string) RequestOption {
	return func(o *requestOptions) { o.method = method }
}

// WithHeader добавляет или переопределяет заголовок запроса.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// Fetch выполняет запрос к endpoint и возвращает поле data ответа.
//
// Ошибки:
//   - *RequestFailedError (errors.Is(err, ErrRequestFailed)) — статус вне 2xx;
//   - ErrMalformedResponse — тело не JSON, нет поля data или оно не того типа;
//   - ErrUnavailable — транспортная ошибка при живом ctx (исходная ошибка тоже обёрнута);
//   - отмена или истечение ctx вызывающего — обёрнутыми как есть.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOption) (T, error) {
	const op = "cms.Fetch"

	var zero T

	ro := requestOptions{method: http.MethodGet, header: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	req, err := http.NewRequestWithContext(ctx, ro.method, c.endpointURL(endpoint), nil)
	if err != nil {
		return zero, fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range ro.header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("%s: %s: %w", op, endpoint, err)
		}
		return zero, fmt.Errorf("%s: %s: %w: %w", op, endpoint, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return zero, &RequestFailedError{
			Endpoint:   endpoint,
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("%s: %s: %w: %v", op, endpoint, ErrMalformedResponse, err)
	}
	if len(env.Data) == 0 {
		return zero, fmt.Errorf("%s: %s: %w: no data field", op, endpoint, ErrMalformedResponse)
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, fmt.Errorf("%s: %s: %w: %v", op, endpoint, ErrMalformedResponse, err)
	}

	return out, nil
}

// statusText — текст статуса из строки ответа ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	if txt := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); txt != "" && txt != resp.Status {
		return txt
	}

	return http.StatusText(resp.StatusCode)
}
