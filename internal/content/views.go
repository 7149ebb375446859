package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/covspace/site/internal/loader"
	"github.com/covspace/site/internal/models"
	logctx "github.com/covspace/site/internal/pkg/log"
)

// Имена представлений (логи и метрики).
const (
	ViewBlogTeaser    = "blog_teaser"
	ViewClientMarquee = "client_marquee"
	ViewPricing       = "pricing"
	ViewTestimonials  = "testimonials"
	ViewBlogs         = "blogs"
	ViewBlogDetail    = "blog_detail"
)

// BlogTeaser — первые home.blog_teaser_limit постов, режим секции.
func (s *Service) BlogTeaser(ctx context.Context) *loader.Pending[[]models.BlogPost] {
	return loader.Start(ctx, loader.Spec[[]models.BlogPost]{
		Name:      ViewBlogTeaser,
		Mode:      loader.Section,
		Fetch:     s.src.Posts,
		Transform: loader.Truncate[models.BlogPost](s.cfg.BlogTeaserLimit),
		Observe:   s.observe,
	})
}

// ClientMarquee — логотипы клиентов, режим секции.
func (s *Service) ClientMarquee(ctx context.Context) *loader.Pending[[]models.Client] {
	return loader.Start(ctx, loader.Spec[[]models.Client]{
		Name:    ViewClientMarquee,
		Mode:    loader.Section,
		Fetch:   s.src.Clients,
		Observe: s.observe,
	})
}

// Pricing — тарифы, режим секции.
func (s *Service) Pricing(ctx context.Context) *loader.Pending[[]models.Service] {
	return loader.Start(ctx, loader.Spec[[]models.Service]{
		Name:    ViewPricing,
		Mode:    loader.Section,
		Fetch:   s.src.Services,
		Observe: s.observe,
	})
}

// Testimonials — отзывы в порядке CMS, режим секции.
func (s *Service) Testimonials(ctx context.Context) *loader.Pending[[]models.Testimonial] {
	return loader.Start(ctx, loader.Spec[[]models.Testimonial]{
		Name:    ViewTestimonials,
		Mode:    loader.Section,
		Fetch:   s.src.Testimonials,
		Observe: s.observe,
	})
}

// Home — снимок четырёх секций главной.
type Home struct {
	Teaser       loader.Result[[]models.BlogPost]
	Clients      loader.Result[[]models.Client]
	Pricing      loader.Result[[]models.Service]
	Testimonials loader.Result[[]models.Testimonial]
}

// Home запускает секции главной одновременно и ждёт их до home.render_wait.
// Не успевшие секции остаются в состоянии Loading.
func (s *Service) Home(ctx context.Context) Home {
	const op = "content.views.Home"

	start := time.Now()

	teaser := s.BlogTeaser(ctx)
	clients := s.ClientMarquee(ctx)
	pricing := s.Pricing(ctx)
	testimonials := s.Testimonials(ctx)

	waitCtx := ctx
	if s.cfg.RenderWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.cfg.RenderWait)
		defer cancel()
	}

	var (
		h Home
		g errgroup.Group
	)

	g.Go(func() error { h.Teaser = teaser.Wait(waitCtx); return nil })
	g.Go(func() error { h.Clients = clients.Wait(waitCtx); return nil })
	g.Go(func() error { h.Pricing = pricing.Wait(waitCtx); return nil })
	g.Go(func() error { h.Testimonials = testimonials.Wait(waitCtx); return nil })
	_ = g.Wait()

	logctx.From(ctx).Debug("home_sections",
		slog.String("op", op),
		slog.String(ViewBlogTeaser, h.Teaser.State.String()),
		slog.String(ViewClientMarquee, h.Clients.State.String()),
		slog.String(ViewPricing, h.Pricing.State.String()),
		slog.String(ViewTestimonials, h.Testimonials.State.String()),
		slog.Duration("dur", time.Since(start)),
	)

	return h
}

// Blogs — все посты, режим страницы.
func (s *Service) Blogs(ctx context.Context) loader.Result[[]models.BlogPost] {
	return loader.Load(ctx, loader.Spec[[]models.BlogPost]{
		Name:    ViewBlogs,
		Mode:    loader.Page,
		Fetch:   s.src.Posts,
		Observe: s.observe,
	})
}

// BlogBySlug ищет первый пост с точным совпадением slug (линейный проход по коллекции).
//
// Ошибки:
//   - ErrMissingSlug — пустой slug, запрос не выполняется;
//   - ErrLoadFailed — ошибка загрузки коллекции (исходная ошибка тоже обёрнута);
//   - ErrNotFound — совпадений нет.
func (s *Service) BlogBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	const op = "content.views.BlogBySlug"

	if slug == "" {
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, ErrMissingSlug)
	}

	res := loader.Load(ctx, loader.Spec[[]models.BlogPost]{
		Name:    ViewBlogDetail,
		Mode:    loader.Page,
		Fetch:   s.src.Posts,
		Observe: s.observe,
	})
	if res.State == loader.Error {
		return models.BlogPost{}, fmt.Errorf("%s: %w: %w", op, ErrLoadFailed, res.Err)
	}

	for _, p := range res.Data {
		if p.Slug == slug {
			return p, nil
		}
	}

	logctx.From(ctx).Info("blog_by_slug_not_found",
		slog.String("op", op),
		slog.String("slug", slug),
		slog.Int("scanned", len(res.Data)),
	)

	return models.BlogPost{}, fmt.Errorf("%s: %w", op, ErrNotFound)
}

// Gallery — изображения галереи. Представления нет, читается командой fetch.
func (s *Service) Gallery(ctx context.Context) ([]models.GalleryImage, error) {
	const op = "content.views.Gallery"

	items, err := s.src.Gallery(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Settings — глобальные настройки сайта.
func (s *Service) Settings(ctx context.Context) (models.GlobalSettings, error) {
	const op = "content.views.Settings"

	st, err := s.src.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}
