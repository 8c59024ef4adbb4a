package heuristics

import (
	"strings"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// Section groups: a page element belongs to a group when its class attribute
// contains any of the group's keywords. Keeping the rules in tables keeps
// the analyzer's control flow free of inline string logic and lets each
// keyword set be tested on its own.
var (
	aboutSectionClasses    = []string{"about", "company", "business", "story"}
	offeringSectionClasses = []string{"product", "service", "offering"}
	deliverySectionClasses = []string{"contact", "service", "delivery"}
)

// choice maps a keyword set onto a categorical value. Within an ordered
// choice list, the first keyword hit wins.
type choice[T any] struct {
	value    T
	keywords []string
}

var sizeChoices = []choice[models.BusinessSize]{
	{models.SizeSmall, []string{"small business", "small local", "family owned", "family-owned", "family run", "family-run", "boutique", "sole proprietor", "one-person"}},
	{models.SizeLarge, []string{"enterprise", "nationwide", "worldwide", "global leader", "multinational", "corporation", "hundreds of employees", "thousands of employees"}},
	{models.SizeMedium, []string{"mid-sized", "midsize", "medium-sized", "growing team", "regional leader", "dozens of employees"}},
}

var priceChoices = []choice[models.PriceRange]{
	{models.PricePremium, []string{"premium", "luxury", "high-end", "high end", "exclusive", "bespoke", "top of the line"}},
	{models.PriceBudget, []string{"affordable", "budget", "cheap", "low cost", "low-cost", "discount", "bargain"}},
	{models.PriceMidRange, []string{"mid-range", "mid range", "competitive pricing", "competitively priced", "great value"}},
}

var salesChoices = []choice[models.SalesModel]{
	{models.SalesSubscription, []string{"subscription", "monthly plan", "per month", "membership", "recurring"}},
	{models.SalesMarketplace, []string{"marketplace", "our sellers", "our vendors", "third-party sellers"}},
	{models.SalesHybrid, []string{"hybrid model", "online and in-store", "in-store and online"}},
	{models.SalesDirect, []string{"buy now", "order online", "shop now", "purchase directly", "direct to consumer", "direct-to-consumer"}},
}

var deliveryChoices = []choice[string]{
	{"on-site", []string{"on-site", "onsite", "we come to you", "at your location"}},
	{"remote", []string{"remote", "virtual", "online consultation", "video call"}},
	{"in-store", []string{"in-store", "in store", "visit us", "walk-in", "walk in"}},
	{"delivery", []string{"delivery", "we deliver", "shipping"}},
	{"pickup", []string{"pickup", "pick-up", "curbside"}},
}

// Navigation/footer anchor hints. Matched against the anchor href and text.
var (
	serviceAreaHints  = []string{"locations", "areas", "regions"}
	onlineChannelHint = "online"
	physicalHints     = []string{"store", "shop"}
)

// classMatchesAny reports whether a class attribute contains any group keyword
func classMatchesAny(classAttr string, group []string) bool {
	lower := strings.ToLower(classAttr)
	for _, kw := range group {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchChoice returns the value of the first choice whose keyword set hits
// the text. Text must already be lowercased.
func matchChoice[T any](lowerText string, choices []choice[T]) (T, bool) {
	for _, c := range choices {
		for _, kw := range c.keywords {
			if strings.Contains(lowerText, kw) {
				return c.value, true
			}
		}
	}
	var zero T
	return zero, false
}

// matchAllChoices returns every choice value whose keyword set hits the text
func matchAllChoices[T any](lowerText string, choices []choice[T]) []T {
	var matched []T
	for _, c := range choices {
		for _, kw := range c.keywords {
			if strings.Contains(lowerText, kw) {
				matched = append(matched, c.value)
				break
			}
		}
	}
	return matched
}
