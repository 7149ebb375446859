package view

import "github.com/covspace/site/internal/models"

// Форматы дат: тизер на главной и список блога.
const (
	teaserDateLayout = "1/2/2006"
	listDateLayout   = "Jan 2, 2006"
)

// teaserDate — дата публикации для тизера; без publishedAt пусто.
func teaserDate(p models.BlogPost) string {
	if p.PublishedAt == nil || p.PublishedAt.IsZero() {
		return ""
	}

	return p.PublishedAt.UTC().Format(teaserDateLayout)
}

// listDate — дата показа (publishedAt, иначе createdAt) для списка и детальной.
func listDate(p models.BlogPost) string {
	d := p.DisplayDate()
	if d.IsZero() {
		return ""
	}

	return d.UTC().Format(listDateLayout)
}
