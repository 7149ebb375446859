package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/covspace/site/internal/models"
)

const ContentType = "application/rss+xml; charset=utf-8"

// Channel — метаданные ленты.
type Channel struct {
	Title       string
	Description string
	// SiteURL — абсолютный адрес сайта, от него строятся ссылки на посты.
	SiteURL string
}

// Write пишет посты (в порядке CMS) лентой RSS 2.0.
func Write(w io.Writer, ch Channel, posts []models.BlogPost) error {
	const op = "feed.Write"

	doc := build(ch, posts)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("%s: header: %w", op, err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	return enc.Close()
}

func build(ch Channel, posts []models.BlogPost) rss {
	site := strings.TrimRight(ch.SiteURL, "/")

	out := rss{
		Version: "2.0",
		Channel: channel{
			Title:       ch.Title,
			Link:        site + "/blogs",
			Description: ch.Description,
			Language:    "en",
			Items:       make([]item, 0, len(posts)),
		},
	}

	var latest time.Time

	for _, p := range posts {
		link := site + "/blogs/" + url.PathEscape(p.Slug)

		it := item{
			Title:       p.Title,
			Link:        link,
			GUID:        guid{IsPermaLink: "true", Value: link},
			Author:      p.Author,
			Description: p.Excerpt,
			Enclosure:   coverEnclosure(p.CoverImage),
		}

		if d := p.DisplayDate(); !d.IsZero() {
			it.PubDate = d.UTC().Format(time.RFC1123Z)

			if d.After(latest) {
				latest = d.Time
			}
		}

		out.Channel.Items = append(out.Channel.Items, it)
	}

	if !latest.IsZero() {
		out.Channel.LastBuildDate = latest.UTC().Format(time.RFC1123Z)
	}

	return out
}

// coverEnclosure — enclosure для обложки; тип по расширению, по умолчанию image/jpeg.
func coverEnclosure(raw string) *enclosure {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	typ := "image/jpeg"

	if u, err := url.Parse(raw); err == nil {
		if t := mime.TypeByExtension(strings.ToLower(path.Ext(u.Path))); strings.HasPrefix(t, "image/") {
			typ = t
		}
	}

	return &enclosure{URL: raw, Type: typ}
}
