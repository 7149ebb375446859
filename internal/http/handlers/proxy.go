package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	apierrors "github.com/covspace/site/internal/errors"
	logctx "github.com/covspace/site/internal/pkg/log"
)

// NewCMSProxy проксирует запросы чтения к CMS: /api/<path> -> <base>/<path>.
// Путь должен приходить уже без префикса (http.StripPrefix).
// Методы кроме GET/HEAD/OPTIONS отклоняются: сайт только читает контент.
func NewCMSProxy(base string, transport http.RoundTripper) (http.Handler, error) {
	const op = "handlers.NewCMSProxy"

	target, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base: %w", op, err)
	}

	if target.Scheme != "http" && target.Scheme != "https" || target.Host == "" {
		return nil, fmt.Errorf("%s: base must be absolute http(s) url: %q", op, base)
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = target.Host
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logctx.From(r.Context()).Warn("cms_proxy_error",
				slog.String("op", op),
				slog.String("path", r.URL.Path),
				slog.String("err", err.Error()),
			)

			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %w", apierrors.ErrUpstreamUnavailable, err)
			}

			apierrors.WriteError(w, r, err)
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			rp.ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "GET, HEAD, OPTIONS")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	}), nil
}
