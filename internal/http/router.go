package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/covspace/site/internal/http/handlers"
	"github.com/covspace/site/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// RateRPS/RateBurst — лимит на клиентский IP; RateRPS <= 0 выключает лимит.
	RateRPS   float64
	RateBurst int
	// CMSProxy обслуживает /api/*; nil — маршрут не регистрируется.
	CMSProxy http.Handler
	// Ready — готовность для /healthz; nil — всегда готов.
	Ready func() bool
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Пробы вне цепочки: без логов и лимитов.
	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if opts.Ready == nil || opts.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	root.Group(func(r chi.Router) {
		// Middleware (внешний -> внутренний).
		r.Use(
			middleware.Recover(),                               // безопасно ловим паники
			middleware.RequestID(),                             // формируем/прокидываем X-Request-Id (до логирования!)
			middleware.Logging(opts.Logger),                    // кладём request-scoped логгер в контекст и логируем
			middleware.RateLimit(opts.RateRPS, opts.RateBurst), // token bucket на IP
			middleware.Timeout(opts.Timeout),                   // общий дедлайн запроса
		)

		registerRoutes(r, h)

		if opts.CMSProxy != nil {
			r.Handle("/api/*", http.StripPrefix("/api", opts.CMSProxy))
		}

		r.NotFound(h.NotFound)
	})

	return root
}

// registerRoutes — единая точка регистрации страниц сайта.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/", h.Home)

	// blog: статический rss.xml приоритетнее {slug}.
	r.Get("/blogs", h.Blogs)
	r.Get("/blogs/rss.xml", h.BlogFeed)
	r.Get("/blogs/{slug}", h.BlogDetail)
}
