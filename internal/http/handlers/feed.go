package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	apierrors "github.com/covspace/site/internal/errors"
	"github.com/covspace/site/internal/feed"
	"github.com/covspace/site/internal/loader"
	logctx "github.com/covspace/site/internal/pkg/log"
)

// BlogFeed — RSS 2.0 со всеми постами. Ошибка загрузки — JSON-ошибка.
func (h *Handlers) BlogFeed(w http.ResponseWriter, r *http.Request) {
	res := h.Content.Blogs(r.Context())
	if res.State == loader.Error {
		apierrors.WriteError(w, r, res.Err)
		return
	}

	var buf bytes.Buffer
	ch := feed.Channel{
		Title:       "Covspace Blog",
		Description: "Insights, stories, and updates from our coworking community in Kochi.",
		SiteURL:     siteURL(r),
	}

	if err := feed.Write(&buf, ch, res.Data); err != nil {
		logctx.From(r.Context()).Error("feed_render_failed", slog.String("err", err.Error()))
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", feed.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// siteURL — scheme://host запроса; за TLS-терминатором уважаем X-Forwarded-Proto.
func siteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}

	return scheme + "://" + r.Host
}
