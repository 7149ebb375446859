// view — серверный рендеринг секций и страниц сайта на gomponents.
//
// Представления не ходят в сеть: они получают снимок loader.Result
// и рисуют его состояние (Loading, Ready, Error).
package view

import (
	"io"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const siteName = "Covspace"

// Render пишет документ в w.
func Render(w io.Writer, n cmp.Node) error {
	return n.Render(w)
}

// Layout — общий каркас страницы: head, навигация, подвал.
func Layout(title string, body ...cmp.Node) cmp.Node {
	if title == "" {
		title = siteName
	} else {
		title = title + " | " + siteName
	}

	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(title)),
				g.Link(g.Rel("alternate"), g.Type("application/rss+xml"), g.Title(siteName+" Blog"), g.Href("/blogs/rss.xml")),
				g.Script(g.Src("https://cdn.tailwindcss.com")),
				g.StyleEl(cmp.Raw(marqueeCSS)),
			),
			g.Body(
				g.Class("bg-white text-gray-900 antialiased"),
				navBar(),
				g.Main(body...),
				footer(),
			),
		),
	)
}

func navBar() cmp.Node {
	return g.Header(
		g.Class("border-b border-gray-100"),
		g.Nav(
			g.Class("max-w-screen-xl mx-auto px-4 sm:px-6 lg:px-8 h-16 flex items-center justify-between"),
			g.A(g.Href("/"), g.Class("text-2xl font-extrabold"), cmp.Text(siteName)),
			g.Div(
				g.Class("flex gap-6 font-semibold"),
				g.A(g.Href("/"), cmp.Text("Home")),
				g.A(g.Href("/blogs"), cmp.Text("Blogs")),
			),
		),
	)
}

func footer() cmp.Node {
	return g.Footer(
		g.Class("py-8 text-center text-sm text-gray-500"),
		cmp.Text(siteName+" · Kochi, Kerala"),
	)
}

// Spinner — центрированный индикатор загрузки; size — tailwind-размер ("h-8 w-8", "h-12 w-12").
func Spinner(box, size string) cmp.Node {
	return g.Div(
		g.Class("flex justify-center items-center "+box),
		cmp.Attr("data-state", "loading"),
		g.Div(g.Class("animate-spin rounded-full border-t-2 border-b-2 border-lime-500 "+size)),
	)
}

// arrowLeft — иконка «назад» у навигационных ссылок.
func arrowLeft() cmp.Node {
	return cmp.Raw(`<svg class="w-5 h-5 mr-2" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M10 19l-7-7m0 0l7-7m-7 7h18"/></svg>`)
}

func arrowRight() cmp.Node {
	return cmp.Raw(`<svg class="w-4 h-4 ml-1" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 5l7 7-7 7"/></svg>`)
}

const marqueeCSS = `@keyframes marquee{0%{transform:translateX(0)}100%{transform:translateX(-50%)}}` +
	`.animate-marquee{animation:marquee 30s linear infinite;width:max-content}`
