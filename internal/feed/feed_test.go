package feed

import (
	"bytes"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/covspace/site/internal/models"
)

func ts(s string) models.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return models.Timestamp{Time: t}
}

func TestWrite_RSS20(t *testing.T) {
	t.Parallel()

	pub := ts("2024-03-05T10:00:00Z")
	posts := []models.BlogPost{
		{
			Slug: "hello-kochi", Title: "Hello Kochi", Excerpt: "First post",
			Author: "Team", CoverImage: "https://cdn.example.com/c/hello.png",
			PublishedAt: &pub, CreatedAt: ts("2024-03-01T00:00:00Z"),
		},
		{
			Slug: "draft", Title: "No publish date", CreatedAt: ts("2024-02-01T08:30:00Z"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Channel{Title: "Covspace Blog", Description: "d", SiteURL: "https://covspace.example/"}, posts))

	out := buf.String()
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte(xml.Header)))

	var doc rss
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	require.Equal(t, "2.0", doc.Version)
	require.Equal(t, "https://covspace.example/blogs", doc.Channel.Link)
	require.Len(t, doc.Channel.Items, 2)

	first := doc.Channel.Items[0]
	require.Equal(t, "Hello Kochi", first.Title)
	require.Equal(t, "https://covspace.example/blogs/hello-kochi", first.Link)
	require.Equal(t, first.Link, first.GUID.Value)
	require.Equal(t, "true", first.GUID.IsPermaLink)
	require.Equal(t, "Tue, 05 Mar 2024 10:00:00 +0000", first.PubDate)
	require.Equal(t, "First post", first.Description)
	require.NotNil(t, first.Enclosure)
	require.Equal(t, "image/png", first.Enclosure.Type)

	// Без publishedAt берётся createdAt; без обложки нет enclosure.
	second := doc.Channel.Items[1]
	require.Equal(t, "Thu, 01 Feb 2024 08:30:00 +0000", second.PubDate)
	require.Nil(t, second.Enclosure)

	require.Equal(t, "Tue, 05 Mar 2024 10:00:00 +0000", doc.Channel.LastBuildDate)
	require.Contains(t, out, `<rss version="2.0">`)
}

func TestWrite_EmptyFeed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Channel{Title: "Covspace Blog", SiteURL: "http://localhost:8080"}, nil))

	var doc rss
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Empty(t, doc.Channel.Items)
	require.Empty(t, doc.Channel.LastBuildDate)
}

func TestCoverEnclosure(t *testing.T) {
	t.Parallel()

	require.Nil(t, coverEnclosure("  "))
	require.Equal(t, "image/jpeg", coverEnclosure("https://cdn/x/no-ext").Type)
	require.Equal(t, "image/jpeg", coverEnclosure("https://cdn/x/a.JPG?w=200").Type)
}
