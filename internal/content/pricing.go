package content

import "github.com/covspace/site/internal/models"

// FormatPricing выбирает первый непустой тариф: monthly, daily, hourly, annually.
// Weekly не участвует.
func FormatPricing(p models.Pricing) string {
	switch {
	case p.Monthly != "":
		return "- " + p.Monthly + " per month"
	case p.Daily != "":
		return "- " + p.Daily + " per day"
	case p.Hourly != "":
		return "- " + p.Hourly + " per hour"
	case p.Annually != "":
		return "- " + p.Annually + " annually"
	default:
		return "- Contact for pricing"
	}
}
