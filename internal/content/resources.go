package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownResource — имя ресурса не из Resources().
var ErrUnknownResource = errors.New("unknown resource")

func (s *Service) resources() map[string]func(context.Context) (any, error) {
	return map[string]func(context.Context) (any, error){
		"services":     func(ctx context.Context) (any, error) { return s.src.Services(ctx) },
		"posts":        func(ctx context.Context) (any, error) { return s.src.Posts(ctx) },
		"testimonials": func(ctx context.Context) (any, error) { return s.src.Testimonials(ctx) },
		"clients":      func(ctx context.Context) (any, error) { return s.src.Clients(ctx) },
		"gallery":      func(ctx context.Context) (any, error) { return s.Gallery(ctx) },
		"settings":     func(ctx context.Context) (any, error) { return s.Settings(ctx) },
	}
}

// Resources — отсортированные имена ресурсов для Resource.
func Resources() []string {
	names := make([]string, 0, 6)
	for n := range (&Service{}).resources() {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Resource загружает ресурс CMS по имени без преобразований (команда fetch).
func (s *Service) Resource(ctx context.Context, name string) (any, error) {
	const op = "content.resources.Resource"

	get, ok := s.resources()[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", op, ErrUnknownResource, name)
	}

	data, err := get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, name, err)
	}

	return data, nil
}
