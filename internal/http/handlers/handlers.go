package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	cmp "maragu.dev/gomponents"

	"github.com/covspace/site/internal/content"
	logctx "github.com/covspace/site/internal/pkg/log"
	"github.com/covspace/site/internal/view"
)

// Handlers агрегирует зависимости страниц сайта.
type Handlers struct {
	Content  *content.Service
	QuoteURL string
}

func New(c *content.Service, quoteURL string) *Handlers {
	return &Handlers{Content: c, QuoteURL: quoteURL}
}

// writeHTML рендерит документ в буфер и только потом пишет статус:
// ошибка рендеринга не оставит клиенту половину страницы с 200.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, n cmp.Node) {
	var buf bytes.Buffer
	if err := view.Render(&buf, n); err != nil {
		logctx.From(r.Context()).Error("render_failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound — HTML 404 для неизвестных маршрутов.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, r, http.StatusNotFound, view.NotFound())
}
