package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/covspace/site/internal/content"
	apierrors "github.com/covspace/site/internal/errors"
	"github.com/covspace/site/internal/loader"
	logctx "github.com/covspace/site/internal/pkg/log"
	"github.com/covspace/site/internal/view"
)

// Home — главная. Ошибки секций не меняют статус: секции деградируют сами.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	home := h.Content.Home(r.Context())

	writeHTML(w, r, http.StatusOK, view.Home(home, view.HomeOptions{QuoteURL: h.QuoteURL}))
}

func (h *Handlers) Blogs(w http.ResponseWriter, r *http.Request) {
	res := h.Content.Blogs(r.Context())

	status := http.StatusOK
	if res.State == loader.Error {
		status, _ = apierrors.ToHTTP(res.Err)
	}

	writeHTML(w, r, status, view.Blogs(res))
}

func (h *Handlers) BlogDetail(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.BlogDetail"

	slug := chi.URLParam(r, "slug")

	post, err := h.Content.BlogBySlug(r.Context(), slug)
	if err != nil {
		status, _ := apierrors.ToHTTP(err)

		logctx.From(r.Context()).Info("blog_detail_error",
			slog.String("op", op),
			slog.String("slug", slug),
			slog.Int("status", status),
			slog.String("err", err.Error()),
		)

		writeHTML(w, r, status, view.BlogError(content.Message(err)))
		return
	}

	writeHTML(w, r, http.StatusOK, view.BlogDetail(post))
}
