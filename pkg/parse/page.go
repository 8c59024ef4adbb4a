package parse

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

// PageParser turns raw fetched HTML into a PageExtraction
type PageParser struct {
	log *logrus.Logger
}

// NewPageParser creates a PageParser
func NewPageParser(log *logrus.Logger) *PageParser {
	return &PageParser{log: log}
}

// ParseDocument parses raw HTML bytes into a goquery document.
// Returns ErrParsing on malformed input that goquery cannot recover.
func (p *PageParser) ParseDocument(body []byte, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML from '%s': %w", utils.ErrParsing, pageURL, err)
	}
	return doc, nil
}

// Extract produces the per-page extraction result from a parsed document.
// rootHost is the crawl root's host, used to filter internal links. Every
// sub-extractor degrades to empty/default fields on malformed markup, so
// Extract itself never fails.
func (p *PageParser) Extract(doc *goquery.Document, pageURL *url.URL, rootHost string, statusCode int) *models.PageExtraction {
	extraction := &models.PageExtraction{
		URL:           pageURL.String(),
		StatusCode:    statusCode,
		Emails:        ExtractEmails(doc),
		Social:        ExtractSocialLinks(doc, pageURL),
		Contact:       ExtractContactInfo(doc),
		Meta:          ExtractMetaInfo(doc),
		Items:         ExtractStructuredData(doc),
		InternalLinks: ExtractInternalLinks(doc, pageURL, rootHost),
	}

	p.log.WithFields(logrus.Fields{
		"url":             extraction.URL,
		"emails":          len(extraction.Emails),
		"structured":      len(extraction.Items),
		"internal_links":  len(extraction.InternalLinks),
		"phone_numbers":   len(extraction.Contact.PhoneNumbers),
	}).Debug("Page extraction complete")

	return extraction
}
