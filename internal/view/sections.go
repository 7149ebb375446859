package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/covspace/site/internal/content"
	"github.com/covspace/site/internal/loader"
	"github.com/covspace/site/internal/models"
)

// Типы офисов — статичные чипы секции тарифов.
var officeTypes = []string{
	"CS2-01 Flexi Desk",
	"CS2-04 Dedicated Desk",
	"CS2-02/03/05/06 Office Suits",
	"CS2-C1 Conference Room",
	"CS2-01 Virtual Office",
}

const pricingImageURL = "https://res.cloudinary.com/dobqxxtml/image/upload/v1759946073/new_litted_g4kces.jpg"

// BlogTeaser — сетка последних постов на главной и ссылка «See More».
func BlogTeaser(res loader.Result[[]models.BlogPost]) cmp.Node {
	var body cmp.Node
	if res.State == loader.Loading {
		body = Spinner("h-64", "h-12 w-12")
	} else {
		body = g.Div(
			g.Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 xl:grid-cols-4 gap-4 sm:gap-5 md:gap-6"),
			cmp.Map(res.Data, teaserCard),
		)
	}

	return g.Section(
		g.ID("blog"),
		g.Class("relative w-full py-8 sm:py-12 md:py-16 lg:py-20 px-4 sm:px-6 lg:px-8"),
		g.Div(
			g.Class("max-w-screen-2xl mx-auto bg-black text-white rounded-3xl p-4 sm:p-6 md:p-8 lg:p-10"),
			g.Header(
				g.Class("flex flex-col sm:flex-row sm:justify-between sm:items-center gap-4 mb-6 sm:mb-8"),
				g.H2(g.Class("text-2xl sm:text-3xl md:text-4xl lg:text-5xl"), g.Style("font-family: cursive"), cmp.Text("Blogs")),
				g.A(
					g.Href("/blogs"),
					g.Class("bg-lime-500 hover:bg-lime-600 text-black font-semibold px-6 py-2 rounded-full w-fit"),
					cmp.Text("See More"),
				),
			),
			body,
		),
	)
}

func teaserCard(p models.BlogPost) cmp.Node {
	return g.A(
		g.Href(postHref(p)),
		cmp.Attr("data-card", "blog-teaser"),
		g.Class("bg-white rounded-2xl overflow-hidden shadow-lg hover:shadow-xl transition-all duration-300 flex flex-col"),
		g.Div(
			g.Class("relative h-40 overflow-hidden"),
			g.Img(g.Src(p.CoverImage), g.Alt(p.Title), g.Class("w-full h-full object-cover"), cmp.Attr("loading", "lazy")),
		),
		g.Div(
			g.Class("p-4 flex flex-col flex-grow"),
			g.H3(g.Class("text-gray-900 font-semibold line-clamp-2 mb-2"), cmp.Text(p.Title)),
			g.P(g.Class("text-gray-600 text-sm line-clamp-3 mb-2 flex-grow"), cmp.Text(p.Excerpt)),
			g.P(g.Class("text-gray-400 text-xs mt-auto"), cmp.Text(teaserDate(p))),
		),
	)
}

// ClientMarquee — бегущая строка клиентов. Пока идёт загрузка — ничего.
// Список дублируется для бесшовной анимации.
func ClientMarquee(res loader.Result[[]models.Client]) cmp.Node {
	if res.State == loader.Loading {
		return nil
	}

	doubled := make([]models.Client, 0, 2*len(res.Data))
	doubled = append(doubled, res.Data...)
	doubled = append(doubled, res.Data...)

	return g.Section(
		g.Class("py-16 bg-white border-y border-gray-100"),
		g.Div(
			g.Class("container mx-auto px-4"),
			g.H3(g.Class("text-2xl font-bold text-center text-gray-900 mb-8"), cmp.Text("Trusted by Leading Companies")),
			g.Div(
				g.Class("overflow-hidden"),
				g.Div(
					g.Class("animate-marquee flex space-x-16"),
					cmp.Map(doubled, clientChip),
				),
			),
		),
	)
}

func clientChip(c models.Client) cmp.Node {
	if c.LogoURL != "" {
		return g.Div(
			g.Class("flex-shrink-0"),
			cmp.Attr("data-card", "client"),
			g.Img(g.Src(c.LogoURL), g.Alt(c.Name), g.Class("h-12 object-contain")),
		)
	}

	return g.Div(
		g.Class("flex-shrink-0"),
		cmp.Attr("data-card", "client"),
		g.Div(g.Class("bg-gray-100 px-8 py-4 rounded-lg text-gray-600 font-semibold text-lg whitespace-nowrap"), cmp.Text(c.Name)),
	)
}

// Pricing — тарифы поверх фонового изображения, GST-дисклеймер и ссылка на запрос предложения.
func Pricing(res loader.Result[[]models.Service], quoteURL string) cmp.Node {
	var list cmp.Node
	if res.State == loader.Loading {
		list = Spinner("py-4", "h-8 w-8")
	} else {
		list = g.Ul(g.Class("space-y-1 pt-1"), cmp.Map(res.Data, pricingRow))
	}

	return g.Section(
		g.ID("pricing"),
		g.Class("relative w-full min-h-screen lg:h-[900px] bg-cover bg-center bg-no-repeat"),
		g.Style("background-image: linear-gradient(rgba(0, 0, 0, 0.4), rgba(0, 0, 0, 0.5)), url("+pricingImageURL+")"),
		g.Div(
			g.Class("relative h-full flex items-center justify-center sm:justify-start max-w-screen-2xl mx-auto px-2 py-8 sm:px-6 lg:px-8"),
			g.Div(
				g.Class("bg-white/80 backdrop-blur-sm rounded-xl shadow-lg p-6 sm:p-8 md:p-10 w-full max-w-sm sm:max-w-md md:max-w-2xl flex flex-col space-y-6"),
				g.Div(
					g.H2(g.Class("text-4xl md:text-5xl font-extrabold text-black"), cmp.Text("COVSPACE")),
					g.P(g.Class("text-sm tracking-[0.2em] font-medium text-black mt-1"), cmp.Text("KOCHI, KERALA")),
				),
				g.Div(
					g.Class("flex flex-wrap gap-3 pt-2"),
					cmp.Map(officeTypes, func(t string) cmp.Node {
						return g.Span(g.Class("bg-[#84cc16] text-white text-xs font-semibold px-3 py-1.5 rounded-md italic"), cmp.Text(t))
					}),
				),
				list,
				g.P(g.Class("text-xs text-black/70 italic pt-2"), cmp.Text("* All prices are exclusive of GST")),
				g.Div(
					g.Class("pt-6"),
					g.A(
						g.Href(quoteURL),
						g.Class("bg-black text-white font-bold py-3 pl-6 pr-3 rounded-full inline-flex items-center gap-4"),
						cmp.Text("LEARN MORE"),
					),
				),
			),
		),
	)
}

func pricingRow(s models.Service) cmp.Node {
	return g.Li(
		cmp.Attr("data-card", "service"),
		g.Class("grid grid-cols-2 items-start text-base md:text-lg leading-snug"),
		g.Span(g.Class("font-medium text-black"), cmp.Text("• "+s.Name)),
		g.Span(g.Class("font-light text-black/90"), cmp.Text(content.FormatPricing(s.Pricing))),
	)
}

// Testimonials — отзывы в трёх раскладках (мобильная, планшет, десктоп).
func Testimonials(res loader.Result[[]models.Testimonial]) cmp.Node {
	if res.State == loader.Loading {
		return g.Section(g.Class("bg-white py-8 sm:py-12 md:py-16 lg:py-20"), Spinner("h-64", "h-12 w-12"))
	}

	cards := func() cmp.Node { return cmp.Map(res.Data, testimonialCard) }

	return g.Section(
		g.ID("testimonials"),
		g.Class("bg-white py-8 sm:py-12 md:py-16 lg:py-20"),
		g.Div(
			g.Class("max-w-7xl mx-auto px-4 sm:px-6 lg:px-8"),
			g.H2(
				g.Class("text-center mb-12 text-3xl md:text-4xl lg:text-5xl font-light text-gray-900 leading-tight"),
				cmp.Text("Listen what our"),
				g.Span(g.Class("text-green-500 font-medium"), cmp.Text(" users")),
				cmp.Text(" have to say"),
			),
			g.Div(g.Class("block sm:hidden"), cmp.Attr("data-layout", "mobile"), g.Div(g.Class("space-y-6"), cards())),
			g.Div(g.Class("hidden sm:block md:hidden"), cmp.Attr("data-layout", "tablet"), g.Div(g.Class("grid grid-cols-2 gap-4 sm:gap-6"), cards())),
			g.Div(g.Class("hidden md:block"), cmp.Attr("data-layout", "desktop"), g.Div(g.Class("grid grid-cols-2 lg:grid-cols-3 gap-6 lg:gap-8"), cards())),
		),
	)
}

func testimonialCard(t models.Testimonial) cmp.Node {
	return g.Div(
		cmp.Attr("data-card", "testimonial"),
		g.Class("flex flex-col h-full min-h-[280px]"),
		g.Div(
			g.Class("relative rounded-xl bg-gray-50 p-6 mb-6 flex-grow"),
			g.P(g.Class("text-gray-700 leading-relaxed"), cmp.Text(`"`+t.Quote+`"`)),
		),
		g.Div(
			g.Class("flex items-center px-2 sm:px-4"),
			g.Img(g.Class("w-12 h-12 rounded-full object-cover"), g.Src(t.AvatarURL), g.Alt(t.ClientName), cmp.Attr("loading", "lazy")),
			g.Div(
				g.Class("ml-4 min-w-0 flex-1"),
				g.P(g.Class("font-semibold text-gray-900 truncate"), cmp.Text(t.ClientName)),
				g.P(g.Class("text-gray-500 text-sm truncate"), cmp.Text(t.Role)),
			),
		),
	)
}
