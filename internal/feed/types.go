// feed - отдаёт посты блога лентой RSS 2.0.
package feed

import "encoding/xml"

// rss - корневая структура RSS-ленты.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

// channel - RSS-канал со списком постов.
type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

// item описывает один пост в ленте.
type item struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
	// GUID — ссылка на пост, isPermaLink="true".
	GUID guid `xml:"guid"`
	// PubDate — RFC1123Z от даты показа поста.
	PubDate     string     `xml:"pubDate,omitempty"`
	Author      string     `xml:"author,omitempty"`
	Description string     `xml:"description"`
	Enclosure   *enclosure `xml:"enclosure,omitempty"`
}

// guid — обёртка над <guid> с атрибутом isPermaLink.
type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// enclosure — обложка поста.
type enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}
