// models содержит сущности, которые сайт читает из CMS.
// Все сущности принадлежат CMS: сайт их только читает и не модифицирует.
package models

import "strings"

// Envelope — единая обёртка всех ответов CMS: {"data": T}.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// Pricing — частичный набор тарифов услуги; пустая строка = тариф не задан.
type Pricing struct {
	Daily    string `json:"daily,omitempty"`
	Weekly   string `json:"weekly,omitempty"`
	Monthly  string `json:"monthly,omitempty"`
	Hourly   string `json:"hourly,omitempty"`
	Annually string `json:"annually,omitempty"`
}

// Service — услуга коворкинга с прайсом.
type Service struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pricing     Pricing   `json:"pricing"`
	Features    []string  `json:"features"`
	IsPopular   bool      `json:"isPopular"`
	BookingURL  string    `json:"bookingUrl"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// BlogPost — запись блога.
//
// Особенности:
//   - PublishedAt может отсутствовать (nil), тогда для показа берётся CreatedAt;
//   - Content — обычный текст, абзацы разделены переводом строки.
type BlogPost struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"coverImage"`
	Author      string     `json:"author"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *Timestamp `json:"publishedAt,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
}

// DisplayDate возвращает дату для показа: PublishedAt, а при его отсутствии CreatedAt.
func (p BlogPost) DisplayDate() Timestamp {
	if p.PublishedAt != nil && !p.PublishedAt.IsZero() {
		return *p.PublishedAt
	}

	return p.CreatedAt
}

// Paragraphs режет Content по переводам строк. Разметка не разбирается.
func (p BlogPost) Paragraphs() []string {
	return strings.Split(p.Content, "\n")
}

// Testimonial — отзыв клиента.
// IsActive и Order не используются при рендеринге: фильтрация и порядок — зона CMS.
type Testimonial struct {
	ID         int64  `json:"id"`
	ClientName string `json:"clientName"`
	Role       string `json:"role"`
	Company    string `json:"company"`
	Quote      string `json:"quote"`
	AvatarURL  string `json:"avatarUrl"`
	IsActive   bool   `json:"isActive"`
	Order      int    `json:"order"`
}

// GalleryImage — изображение галереи.
type GalleryImage struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Client — компания-клиент для бегущей строки логотипов.
type Client struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LogoURL    string `json:"logoUrl"`
	WebsiteURL string `json:"websiteUrl"`
	IsActive   bool   `json:"isActive"`
}

// GlobalSettings — непрозрачный набор настроек сайта.
type GlobalSettings map[string]any
