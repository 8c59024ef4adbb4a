package models

import "time"

// SocialLinks holds one URL slot per known platform. A nil field means the
// platform was not seen on any crawled page.
type SocialLinks struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
}

// ContactInfo carries phone numbers and business hours found on a page or site
type ContactInfo struct {
	PhoneNumbers  []string `json:"phone_numbers"`
	BusinessHours *string  `json:"business_hours"`
}

// MetaInfo carries document metadata from <title> and <meta> tags
type MetaInfo struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Keywords    *string `json:"keywords"`
}

// StructuredItem is one schema.org entity extracted from microdata or JSON-LD,
// tagged by kind at parse time.
type StructuredItem struct {
	Kind        ItemKind `json:"kind"`
	Type        string   `json:"type"` // Declared schema type name, e.g. "Product", "LocalBusiness"
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	URL         string   `json:"url,omitempty"`
	Image       string   `json:"image,omitempty"`

	// Organization-only evidence used by profile heuristics
	Address      string `json:"address,omitempty"`
	FoundingDate string `json:"founding_date,omitempty"`
}

// PageExtraction is the result of parsing a single fetched page.
// Immutable once produced; the crawl controller merges it into the aggregate.
type PageExtraction struct {
	URL           string
	StatusCode    int
	Emails        []string // Cleaned, validated, deduplicated
	Social        SocialLinks
	Contact       ContactInfo
	Meta          MetaInfo
	Items         []StructuredItem // Document order; at most one Organization kept
	InternalLinks []string         // Absolute URLs on the crawl root's host, deduplicated
}

// Organization returns the page's Organization-typed structured item, or nil.
func (p *PageExtraction) Organization() *StructuredItem {
	for i := range p.Items {
		if p.Items[i].Kind == KindOrganization {
			return &p.Items[i]
		}
	}
	return nil
}

// ProductServiceRecord is one detected product or service offering.
// Records come either from structured data (authoritative) or from a
// heuristic scan of product/service page sections.
type ProductServiceRecord struct {
	Name        string     `json:"name"`
	Type        RecordType `json:"type"`
	Category    *string    `json:"category"`
	PriceRange  PriceRange `json:"price_range"`
	Description *string    `json:"description"`
}

// BusinessProfile holds heuristically inferred business attributes.
// Fields default to "unknown"/empty, never absent.
type BusinessProfile struct {
	Name                 string       `json:"name"`
	PrimaryCategory      string       `json:"primary_category"`
	Industry             string       `json:"industry"`
	BusinessSize         BusinessSize `json:"business_size"`
	YearsInBusiness      *int         `json:"years_in_business"`
	MainOfferings        []string     `json:"main_offerings"`
	PriceRange           PriceRange   `json:"price_range"`
	TargetSegments       []string     `json:"target_segments"`
	SalesModel           SalesModel   `json:"sales_model"`
	DistributionChannels []string     `json:"distribution_channels"`
	ServiceDelivery      []string     `json:"service_delivery"`
	Locations            []string     `json:"locations"`
	ServiceAreas         []string     `json:"service_areas"`
}

// NewBusinessProfile returns a profile with all categorical fields set to unknown
func NewBusinessProfile() BusinessProfile {
	return BusinessProfile{
		BusinessSize: SizeUnknown,
		PriceRange:   PriceUnknown,
		SalesModel:   SalesUnknown,
	}
}

// PageCheck records one visited URL and how the fetch ended
type PageCheck struct {
	URL    string `json:"url"`
	Status string `json:"status"` // Numeric status code, or an error category on failure
}

// CrawlAggregate is the accumulated union across all pages visited in one
// site crawl. Mutated incrementally by the controller; Finalize is called
// once at crawl end.
type CrawlAggregate struct {
	RootURL      string                 `json:"root_url"`
	StatusCode   int                    `json:"status_code"` // Root page status
	Emails       []string               `json:"emails"`
	Social       SocialLinks            `json:"social_media"`
	Contact      ContactInfo            `json:"contact_info"`
	Meta         MetaInfo               `json:"meta_info"`
	Items        []ProductServiceRecord `json:"products_and_services"`
	Profile      BusinessProfile        `json:"business_profile"`
	PagesChecked []PageCheck            `json:"pages_checked"`
	LastModified *string                `json:"last_modified"` // Verbatim Last-Modified header of the root page
	CrawlTime    time.Time              `json:"crawl_timestamp"` // Set at finalization
}

// Business is one input row of the batch table
type Business struct {
	Name        string
	Address     string
	PhoneNumber string
	Website     string
}

// BusinessAnalysis is the AI-generated sales-oriented summary of a business
type BusinessAnalysis struct {
	BusinessType        string   `json:"business_type"`
	MainOfferings       []string `json:"main_offerings"`
	TargetAudience      string   `json:"target_audience,omitempty"`
	UniqueSellingPoints []string `json:"unique_selling_points,omitempty"`
	PriceRange          string   `json:"price_range,omitempty"`
	BusinessModel       string   `json:"business_model,omitempty"`
}

// BusinessResult is one output row of the batch table
type BusinessResult struct {
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Website      string            `json:"website"`
	Success      bool              `json:"success"`
	StatusCode   int               `json:"status_code,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Aggregate    *CrawlAggregate   `json:"crawl,omitempty"`
	Analysis     *BusinessAnalysis `json:"business_analysis,omitempty"`
	RunID        string            `json:"run_id"`
}
