package view

import (
	"net/url"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/covspace/site/internal/content"
	"github.com/covspace/site/internal/loader"
	"github.com/covspace/site/internal/models"
)

const blogsHeroImageURL = "https://res.cloudinary.com/dobqxxtml/image/upload/v1759945668/group-business-executives-working-together_m0lxs8.jpg"

// HomeOptions — статические параметры главной.
type HomeOptions struct {
	QuoteURL string
}

// Home — главная: четыре независимые секции.
func Home(h content.Home, opts HomeOptions) cmp.Node {
	return Layout("",
		Pricing(h.Pricing, opts.QuoteURL),
		ClientMarquee(h.Clients),
		Testimonials(h.Testimonials),
		BlogTeaser(h.Teaser),
	)
}

// Blogs — страница со всеми постами.
// Ошибка загрузки — статичное сообщение и ссылка на главную, без повтора.
func Blogs(res loader.Result[[]models.BlogPost]) cmp.Node {
	var body cmp.Node

	switch res.State {
	case loader.Loading:
		body = g.Div(g.Class("text-center py-20"), cmp.Attr("data-state", "loading"), cmp.Text("Loading posts..."))
	case loader.Error:
		body = g.Div(
			g.Class("text-center py-20"),
			cmp.Attr("data-state", "error"),
			g.H2(g.Class("text-2xl font-bold text-gray-900"), cmp.Text(content.Message(res.Err))),
		)
	default:
		body = g.Div(
			g.Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6 sm:gap-8"),
			cmp.Map(res.Data, blogCard),
		)
	}

	return Layout("Blog",
		g.Section(
			g.Class("relative py-12 sm:py-16 lg:py-20 bg-cover bg-center bg-no-repeat"),
			g.Style("background-image: url("+blogsHeroImageURL+")"),
			g.Div(g.Class("absolute inset-0 bg-black/50"), cmp.Attr("aria-hidden", "true")),
			g.Div(
				g.Class("relative max-w-3xl mx-auto bg-white/10 backdrop-blur-sm rounded-2xl p-8 sm:p-12 text-center"),
				g.H1(
					g.Class("text-3xl sm:text-4xl md:text-5xl font-bold text-white mb-4"),
					cmp.Text("Covspace "),
					g.Span(g.Class("text-lime-400"), cmp.Text("Blog")),
				),
				g.P(g.Class("text-lg text-white/90"), cmp.Text("Insights, stories, and updates from our coworking community in Kochi.")),
			),
		),
		g.Section(
			g.Class("py-12 sm:py-16 lg:py-20"),
			g.Div(
				g.Class("max-w-screen-xl mx-auto px-4 sm:px-6 lg:px-8"),
				g.H2(g.Class("text-2xl sm:text-3xl font-bold text-gray-900 mb-2"), cmp.Text("Latest from Covspace")),
				g.P(g.Class("text-gray-600 max-w-xl mb-8"), cmp.Text("Explore how teams, founders, and professionals are using coworking to do their best work.")),
				body,
			),
		),
		g.Section(
			g.Class("py-8 sm:py-12 text-center"),
			g.A(g.Href("/"), g.Class("inline-flex items-center text-lime-600 hover:text-lime-700 font-semibold"), arrowLeft(), cmp.Text("Back to Home")),
		),
	)
}

func blogCard(p models.BlogPost) cmp.Node {
	return g.Article(
		cmp.Attr("data-card", "blog"),
		g.Class("bg-white border border-gray-100 rounded-2xl shadow-md hover:shadow-xl overflow-hidden flex flex-col group"),
		g.Div(
			g.Class("relative h-48 sm:h-52 md:h-56 overflow-hidden"),
			g.Img(g.Src(p.CoverImage), g.Alt(p.Title), g.Class("w-full h-full object-cover"), cmp.Attr("loading", "lazy")),
			g.Span(g.Class("absolute top-3 left-3 px-3 py-1 rounded-full text-xs font-semibold bg-white/90"), cmp.Text("Blog")),
		),
		g.Div(
			g.Class("p-4 sm:p-5 flex flex-col flex-1"),
			g.Div(
				g.Class("flex items-center text-xs sm:text-sm text-gray-500 mb-2"),
				g.Span(cmp.Text(listDate(p))),
				g.Span(g.Class("mx-2"), cmp.Text("•")),
				g.Span(cmp.Text(p.Author)),
			),
			g.H3(g.Class("text-lg sm:text-xl font-semibold text-gray-900 mb-2 line-clamp-2"), cmp.Text(p.Title)),
			g.P(g.Class("text-sm text-gray-600 mb-4 line-clamp-3 flex-1"), cmp.Text(p.Excerpt)),
			g.A(g.Href(postHref(p)), g.Class("mt-auto inline-flex items-center text-sm font-semibold text-lime-600"), cmp.Text("Read More"), arrowRight()),
		),
	)
}

// BlogDetail — пост целиком: обложка, автор, дата, абзацы.
func BlogDetail(p models.BlogPost) cmp.Node {
	return Layout(p.Title,
		g.Div(
			g.Class("relative h-64 md:h-96 w-full overflow-hidden"),
			g.Img(g.Src(p.CoverImage), g.Alt(p.Title), g.Class("w-full h-full object-cover")),
			g.Div(g.Class("absolute inset-0 bg-black/40")),
			g.Div(
				g.Class("absolute bottom-0 left-0 right-0 p-6 md:p-12 max-w-screen-xl mx-auto"),
				g.H1(g.Class("text-3xl md:text-4xl lg:text-5xl font-bold text-white mb-4 leading-tight"), cmp.Text(p.Title)),
				g.Div(
					g.Class("flex items-center text-white/90 text-sm md:text-base space-x-6"),
					g.Span(cmp.Attr("data-field", "author"), cmp.Text(p.Author)),
					g.Span(cmp.Attr("data-field", "date"), cmp.Text(listDate(p))),
				),
			),
		),
		g.Article(
			g.Class("max-w-3xl mx-auto px-4 sm:px-6 py-12 md:py-16"),
			g.Div(
				g.Class("prose prose-lg max-w-none"),
				cmp.Map(p.Paragraphs(), func(s string) cmp.Node {
					return g.P(g.Class("mb-4 text-gray-700 leading-relaxed"), cmp.Text(s))
				}),
			),
			g.Div(
				g.Class("mt-12 pt-8 border-t border-gray-200"),
				g.A(g.Href("/blogs"), g.Class("text-lime-600 hover:text-lime-700 font-semibold inline-flex items-center"), arrowLeft(), cmp.Text("Back to All Posts")),
			),
		),
	)
}

// BlogError — ошибка детальной страницы: сообщение и возврат к списку. Повтора нет.
func BlogError(message string) cmp.Node {
	return Layout(message,
		g.Div(
			g.Class("min-h-screen flex flex-col items-center justify-center bg-gray-50 px-4"),
			cmp.Attr("data-state", "error"),
			g.H1(g.Class("text-2xl font-bold text-gray-900 mb-4"), cmp.Text(message)),
			g.A(g.Href("/blogs"), g.Class("text-lime-600 hover:text-lime-700 font-semibold flex items-center"), arrowLeft(), cmp.Text("Back to Blogs")),
		),
	)
}

// NotFound — страница для неизвестных маршрутов.
func NotFound() cmp.Node {
	return Layout("Page not found",
		g.Div(
			g.Class("min-h-screen flex flex-col items-center justify-center px-4"),
			g.H1(g.Class("text-2xl font-bold text-gray-900 mb-4"), cmp.Text("Page not found")),
			g.A(g.Href("/"), g.Class("text-lime-600 font-semibold flex items-center"), arrowLeft(), cmp.Text("Back to Home")),
		),
	)
}

func postHref(p models.BlogPost) string {
	return "/blogs/" + url.PathEscape(p.Slug)
}
