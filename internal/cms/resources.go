package cms

import (
	"context"

	"github.com/covspace/site/internal/models"
)

// Resource — типизированный эндпойнт CMS.
type Resource[T any] struct {
	Path string
}

// Get запрашивает ресурс через Fetch.
func (r Resource[T]) Get(ctx context.Context, c *Client, opts ...RequestOption) (T, error) {
	return Fetch[T](ctx, c, r.Path, opts...)
}

// Эндпойнты CMS.
var (
	ServiceList     = Resource[[]models.Service]{Path: "/services"}
	PostList        = Resource[[]models.BlogPost]{Path: "/posts"}
	TestimonialList = Resource[[]models.Testimonial]{Path: "/testimonials"}
	GalleryList     = Resource[[]models.GalleryImage]{Path: "/gallery"}
	ClientList      = Resource[[]models.Client]{Path: "/clients"}
	SettingsDoc     = Resource[models.GlobalSettings]{Path: "/settings"}
)

func (c *Client) Services(ctx context.Context) ([]models.Service, error) {
	return ServiceList.Get(ctx, c)
}

func (c *Client) Posts(ctx context.Context) ([]models.BlogPost, error) {
	return PostList.Get(ctx, c)
}

func (c *Client) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	return TestimonialList.Get(ctx, c)
}

func (c *Client) Gallery(ctx context.Context) ([]models.GalleryImage, error) {
	return GalleryList.Get(ctx, c)
}

func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	return ClientList.Get(ctx, c)
}

func (c *Client) Settings(ctx context.Context) (models.GlobalSettings, error) {
	return SettingsDoc.Get(ctx, c)
}
