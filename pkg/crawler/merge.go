package crawler

import (
	"sort"
	"time"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/heuristics"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// aggregator accumulates page extractions into one site-level result.
// Merge order matters: pages are applied in visit order, and later pages
// overwrite single-valued fields unless an earlier value came from
// structured data and the later one did not.
type aggregator struct {
	result           *models.CrawlAggregate
	emailSet         map[string]struct{}
	structuredFields map[string]bool
}

func newAggregator(rootURL string) *aggregator {
	return &aggregator{
		result: &models.CrawlAggregate{
			RootURL: rootURL,
			Profile: models.NewBusinessProfile(),
		},
		emailSet:         make(map[string]struct{}),
		structuredFields: make(map[string]bool),
	}
}

// mergePage folds one page's extraction and inferred profile into the aggregate
func (a *aggregator) mergePage(page *models.PageExtraction, pp *heuristics.PageProfile) {
	for _, email := range page.Emails {
		a.emailSet[email] = struct{}{}
	}

	mergeSocial(&a.result.Social, page.Social)
	// Phones concatenate across pages without dedup, like the item records
	a.result.Contact.PhoneNumbers = append(a.result.Contact.PhoneNumbers, page.Contact.PhoneNumbers...)
	if a.result.Contact.BusinessHours == nil {
		a.result.Contact.BusinessHours = page.Contact.BusinessHours
	}
	mergeMeta(&a.result.Meta, page.Meta)

	a.result.Items = append(a.result.Items, pp.Records...)
	a.mergeProfile(pp)
}

func mergeSocial(dst *models.SocialLinks, src models.SocialLinks) {
	if src.Facebook != nil {
		dst.Facebook = src.Facebook
	}
	if src.Twitter != nil {
		dst.Twitter = src.Twitter
	}
	if src.Instagram != nil {
		dst.Instagram = src.Instagram
	}
	if src.LinkedIn != nil {
		dst.LinkedIn = src.LinkedIn
	}
}

func mergeMeta(dst *models.MetaInfo, src models.MetaInfo) {
	if src.Title != nil {
		dst.Title = src.Title
	}
	if src.Description != nil {
		dst.Description = src.Description
	}
	if src.Keywords != nil {
		dst.Keywords = src.Keywords
	}
}

// mergeProfile applies one page's inferred profile. Structured-data values
// always win over heuristic ones; between two values of the same provenance
// the later page wins for strings and the first non-default wins for
// categorical fields.
func (a *aggregator) mergeProfile(pp *heuristics.PageProfile) {
	p := &a.result.Profile
	src := pp.Profile

	if src.Name != "" && a.takeField(heuristics.FieldName, pp) {
		p.Name = src.Name
	}
	if src.PrimaryCategory != "" && a.takeField(heuristics.FieldPrimaryCategory, pp) {
		p.PrimaryCategory = src.PrimaryCategory
	}
	if src.Industry != "" && a.takeField(heuristics.FieldIndustry, pp) {
		p.Industry = src.Industry
	}
	if src.BusinessSize != models.SizeUnknown && a.takeField(heuristics.FieldBusinessSize, pp) {
		if p.BusinessSize == models.SizeUnknown || pp.StructuredFields[heuristics.FieldBusinessSize] {
			p.BusinessSize = src.BusinessSize
		}
	}
	if src.PriceRange != models.PriceUnknown && a.takeField(heuristics.FieldPriceRange, pp) {
		if p.PriceRange == models.PriceUnknown || pp.StructuredFields[heuristics.FieldPriceRange] {
			p.PriceRange = src.PriceRange
		}
	}
	if src.SalesModel != models.SalesUnknown && a.takeField(heuristics.FieldSalesModel, pp) {
		if p.SalesModel == models.SalesUnknown || pp.StructuredFields[heuristics.FieldSalesModel] {
			p.SalesModel = src.SalesModel
		}
	}
	if src.YearsInBusiness != nil && a.takeField(heuristics.FieldYears, pp) {
		if p.YearsInBusiness == nil || pp.StructuredFields[heuristics.FieldYears] {
			p.YearsInBusiness = src.YearsInBusiness
		}
	}

	p.MainOfferings = appendUnique(p.MainOfferings, src.MainOfferings)
	p.TargetSegments = appendUnique(p.TargetSegments, src.TargetSegments)
	p.DistributionChannels = appendUnique(p.DistributionChannels, src.DistributionChannels)
	p.ServiceDelivery = appendUnique(p.ServiceDelivery, src.ServiceDelivery)
	p.Locations = appendUnique(p.Locations, src.Locations)
	p.ServiceAreas = appendUnique(p.ServiceAreas, src.ServiceAreas)
}

// takeField reports whether this page is allowed to set the field, and
// records its provenance when it is. A heuristic value never displaces a
// structured one from an earlier page.
func (a *aggregator) takeField(field string, pp *heuristics.PageProfile) bool {
	if a.structuredFields[field] && !pp.StructuredFields[field] {
		return false
	}
	if pp.StructuredFields[field] {
		a.structuredFields[field] = true
	}
	return true
}

// finalize freezes the aggregate: emails come out sorted for determinism
// and the crawl timestamp is stamped once.
func (a *aggregator) finalize() *models.CrawlAggregate {
	emails := make([]string, 0, len(a.emailSet))
	for e := range a.emailSet {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	a.result.Emails = emails
	a.result.CrawlTime = time.Now().UTC()
	return a.result
}

func appendUnique(dst []string, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range src {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
