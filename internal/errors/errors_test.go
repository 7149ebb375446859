package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covspace/site/internal/cms"
	"github.com/covspace/site/internal/content"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"not_found", fmt.Errorf("op: %w", content.ErrNotFound), http.StatusNotFound, "not_found"},
		{"missing_slug", content.ErrMissingSlug, http.StatusBadRequest, "invalid_argument"},
		{"rate_limited", ErrRateLimited, http.StatusTooManyRequests, "resource_exhausted"},
		{"request_failed", &cms.RequestFailedError{Endpoint: "/posts", Status: 500}, http.StatusBadGateway, "bad_gateway"},
		{"malformed", fmt.Errorf("x: %w", cms.ErrMalformedResponse), http.StatusBadGateway, "bad_gateway"},
		{"load_failed", fmt.Errorf("op: %w: %w", content.ErrLoadFailed, &cms.RequestFailedError{Status: 503}), http.StatusBadGateway, "bad_gateway"},
		{"load_failed_deadline", fmt.Errorf("op: %w: %w", content.ErrLoadFailed, context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"cms_unavailable", fmt.Errorf("cms.Fetch: /posts: %w: dial tcp: refused", cms.ErrUnavailable), http.StatusBadGateway, "bad_gateway"},
		{"upstream", fmt.Errorf("proxy: %w: dial tcp: refused", ErrUpstreamUnavailable), http.StatusBadGateway, "bad_gateway"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"internal", stderrors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

// Детали апстрима не утекают в message.
func TestToHTTP_NoDetailsLeak(t *testing.T) {
	_, resp := ToHTTP(&cms.RequestFailedError{Endpoint: "/secret/path", Status: 500, StatusText: "Internal Server Error"})
	require.NotContains(t, resp.Error.Message, "/secret/path")
}

func TestWriteError_JSONWithRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blogs/x", nil)
	req.Header.Set("X-Request-Id", "rid-42")

	WriteError(rec, req, content.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "not_found", body.Error.Code)
	require.Equal(t, "rid-42", body.Error.RequestID)
}

func TestWriteError_NoRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, stderrors.New("x"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "request_id")
}
