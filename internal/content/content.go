// content — данные представлений сайта поверх источника CMS.
//
// Каждое представление (секция главной, страница) получает ровно одну
// независимую загрузку через loader. Секции деградируют в пустой Ready,
// страницы — в явное состояние Error.
package content

import (
	"context"
	"errors"

	"github.com/covspace/site/internal/config"
	"github.com/covspace/site/internal/loader"
	"github.com/covspace/site/internal/metrics"
	"github.com/covspace/site/internal/models"
)

var (
	// ErrNotFound — пост с таким slug отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("post not found")
	// ErrMissingSlug — пустой slug; загрузка не выполняется.
	// Транспорт: 400.
	ErrMissingSlug = errors.New("missing slug")
	// ErrLoadFailed — не удалось получить коллекцию постов.
	// Транспорт: 502.
	ErrLoadFailed = errors.New("failed to load blog post")
)

// Source — контракт источника контента (реализуется *cms.Client).
//
//go:generate mockgen -source=./content.go -destination=../../mocks/source.go -package=mocks
type Source interface {
	Services(ctx context.Context) ([]models.Service, error)
	Posts(ctx context.Context) ([]models.BlogPost, error)
	Testimonials(ctx context.Context) ([]models.Testimonial, error)
	Gallery(ctx context.Context) ([]models.GalleryImage, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Settings(ctx context.Context) (models.GlobalSettings, error)
}

// Service — загрузки представлений.
type Service struct {
	src     Source
	cfg     config.HomeConfig
	observe loader.Observer
}

type Option func(*Service)

// WithMetrics — считать итоговые состояния загрузок в m.Renders.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		if m == nil {
			return
		}

		s.observe = func(name string, st loader.State) {
			m.Renders.WithLabelValues(name, st.String()).Inc()
		}
	}
}

// New создает новый экземпляр Service.
func New(src Source, cfg config.HomeConfig, opts ...Option) *Service {
	s := &Service{
		src: src,
		cfg: cfg,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Message — текст ошибки для пользователя.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Post not found"
	case errors.Is(err, ErrLoadFailed):
		return "Failed to load blog post"
	case errors.Is(err, ErrMissingSlug):
		return "Post not found"
	default:
		return "Failed to load posts"
	}
}
