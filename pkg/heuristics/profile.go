package heuristics

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// Profile field keys used to mark which fields came from structured data.
// The crawl aggregate uses them so heuristic-only evidence from a later page
// never clobbers a structured-data value.
const (
	FieldName            = "name"
	FieldPrimaryCategory = "primary_category"
	FieldIndustry        = "industry"
	FieldBusinessSize    = "business_size"
	FieldPriceRange      = "price_range"
	FieldSalesModel      = "sales_model"
	FieldYears           = "years_in_business"
)

// foundedYearRe captures a 4-digit year after a tenure phrase
var foundedYearRe = regexp.MustCompile(`(?i)(?:since|established(?:\s+in)?|founded(?:\s+in)?|serving .*? since)\s+(\d{4})`)

// PageProfile is the partial profile inferred from one page, plus the
// product/service records found on it.
type PageProfile struct {
	Profile          models.BusinessProfile
	Records          []models.ProductServiceRecord
	StructuredFields map[string]bool
}

// Analyzer infers business attributes from a parsed page
type Analyzer struct {
	log *logrus.Logger
	now func() time.Time // Injectable clock for years-in-business math
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(log *logrus.Logger) *Analyzer {
	return &Analyzer{log: log, now: time.Now}
}

// Analyze scans a parsed page and its structured data for business profile
// cues. Within one page, the first matching section wins per categorical
// field; structured-data evidence is applied first and is never overwritten
// by this page's text heuristics.
func (a *Analyzer) Analyze(doc *goquery.Document, extraction *models.PageExtraction) *PageProfile {
	pp := &PageProfile{
		Profile:          models.NewBusinessProfile(),
		StructuredFields: make(map[string]bool),
	}

	if org := extraction.Organization(); org != nil {
		a.seedFromOrganization(pp, org)
	}

	a.scanAboutSections(doc, pp)
	a.scanOfferingSections(doc, pp)
	a.scanDeliverySections(doc, pp)
	a.scanNavAnchors(doc, pp)

	pp.Records = append(pp.Records, structuredRecords(extraction.Items)...)
	pp.Records = append(pp.Records, a.heuristicRecords(doc)...)

	pp.Profile.DistributionChannels = dedupe(pp.Profile.DistributionChannels)
	pp.Profile.ServiceDelivery = dedupe(pp.Profile.ServiceDelivery)
	pp.Profile.ServiceAreas = dedupe(pp.Profile.ServiceAreas)

	return pp
}

// seedFromOrganization applies authoritative schema.org Organization evidence
func (a *Analyzer) seedFromOrganization(pp *PageProfile, org *models.StructuredItem) {
	if org.Name != "" {
		pp.Profile.Name = org.Name
		pp.StructuredFields[FieldName] = true
	}
	pp.Profile.PrimaryCategory = org.Type
	pp.StructuredFields[FieldPrimaryCategory] = true
	if org.Category != "" {
		pp.Profile.Industry = org.Category
		pp.StructuredFields[FieldIndustry] = true
	}
	if org.Address != "" {
		pp.Profile.Locations = append(pp.Profile.Locations, org.Address)
	}
	if org.FoundingDate != "" {
		// A parse failure leaves the field untouched, not zero
		if len(org.FoundingDate) >= 4 {
			if year, err := strconv.Atoi(org.FoundingDate[:4]); err == nil && year > 1000 {
				years := a.now().Year() - year
				pp.Profile.YearsInBusiness = &years
				pp.StructuredFields[FieldYears] = true
			}
		}
	}
}

// sectionTexts returns the lowercased text of each element whose class
// attribute matches the section group, in document order.
func sectionTexts(doc *goquery.Document, group []string) []string {
	var texts []string
	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !classMatchesAny(class, group) {
			return
		}
		texts = append(texts, strings.ToLower(sel.Text()))
	})
	return texts
}

func (a *Analyzer) scanAboutSections(doc *goquery.Document, pp *PageProfile) {
	for _, text := range sectionTexts(doc, aboutSectionClasses) {
		if pp.Profile.BusinessSize == models.SizeUnknown && !pp.StructuredFields[FieldBusinessSize] {
			if size, ok := matchChoice(text, sizeChoices); ok {
				pp.Profile.BusinessSize = size
			}
		}
		if pp.Profile.YearsInBusiness == nil && !pp.StructuredFields[FieldYears] {
			if m := foundedYearRe.FindStringSubmatch(text); m != nil {
				if year, err := strconv.Atoi(m[1]); err == nil {
					if years := a.now().Year() - year; years >= 0 {
						pp.Profile.YearsInBusiness = &years
					}
				}
			}
		}
	}
}

func (a *Analyzer) scanOfferingSections(doc *goquery.Document, pp *PageProfile) {
	for _, text := range sectionTexts(doc, offeringSectionClasses) {
		if pp.Profile.PriceRange == models.PriceUnknown && !pp.StructuredFields[FieldPriceRange] {
			if price, ok := matchChoice(text, priceChoices); ok {
				pp.Profile.PriceRange = price
			}
		}
		if pp.Profile.SalesModel == models.SalesUnknown && !pp.StructuredFields[FieldSalesModel] {
			if model, ok := matchChoice(text, salesChoices); ok {
				pp.Profile.SalesModel = model
			}
		}
	}
}

func (a *Analyzer) scanDeliverySections(doc *goquery.Document, pp *PageProfile) {
	for _, text := range sectionTexts(doc, deliverySectionClasses) {
		pp.Profile.ServiceDelivery = append(pp.Profile.ServiceDelivery, matchAllChoices(text, deliveryChoices)...)
	}
}

// scanNavAnchors looks for keyword hints in navigation and footer links
func (a *Analyzer) scanNavAnchors(doc *goquery.Document, pp *PageProfile) {
	doc.Find("nav a[href], footer a[href], header a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())
		haystack := strings.ToLower(href + " " + text)

		for _, hint := range serviceAreaHints {
			if strings.Contains(haystack, hint) && text != "" {
				pp.Profile.ServiceAreas = append(pp.Profile.ServiceAreas, text)
				break
			}
		}
		if strings.Contains(haystack, onlineChannelHint) {
			pp.Profile.DistributionChannels = append(pp.Profile.DistributionChannels, "online")
		}
		for _, hint := range physicalHints {
			if strings.Contains(haystack, hint) {
				pp.Profile.DistributionChannels = append(pp.Profile.DistributionChannels, "physical")
				break
			}
		}
	})
}

// structuredRecords converts schema.org Product/Service items directly.
// Items without a name are dropped.
func structuredRecords(items []models.StructuredItem) []models.ProductServiceRecord {
	var records []models.ProductServiceRecord
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		var recType models.RecordType
		switch item.Kind {
		case models.KindProduct:
			recType = models.RecordProduct
		case models.KindService:
			recType = models.RecordService
		default:
			continue
		}

		rec := models.ProductServiceRecord{
			Name:       item.Name,
			Type:       recType,
			PriceRange: models.PriceUnknown,
		}
		if item.Category != "" {
			category := item.Category
			rec.Category = &category
		}
		if item.Description != "" {
			desc := item.Description
			rec.Description = &desc
			if price, ok := matchChoice(strings.ToLower(item.Name+" "+item.Description), priceChoices); ok {
				rec.PriceRange = price
			}
		}
		records = append(records, rec)
	}
	return records
}

// heuristicRecords extracts best-effort offering records from class-matching
// sections that carry a heading. Lower confidence than structured data; both
// signals are kept for downstream disambiguation.
func (a *Analyzer) heuristicRecords(doc *goquery.Document) []models.ProductServiceRecord {
	var records []models.ProductServiceRecord

	doc.Find("[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !classMatchesAny(class, offeringSectionClasses) {
			return
		}

		heading := sel.Find("h1, h2, h3, h4, h5, h6").First()
		name := strings.TrimSpace(heading.Text())
		text := strings.TrimSpace(sel.Text())
		if name == "" || text == "" {
			return // A record missing a name is discarded
		}

		recType := models.RecordProduct
		if strings.Contains(strings.ToLower(class), "service") {
			recType = models.RecordService
		}

		rec := models.ProductServiceRecord{
			Name:       name,
			Type:       recType,
			PriceRange: models.PriceUnknown,
		}
		lower := strings.ToLower(text)
		if price, ok := matchChoice(lower, priceChoices); ok {
			rec.PriceRange = price
		}
		if desc := strings.TrimSpace(strings.TrimPrefix(text, name)); desc != "" {
			rec.Description = &desc
		}
		records = append(records, rec)
	})

	return records
}

// dedupe removes duplicates preserving first-seen order
func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
