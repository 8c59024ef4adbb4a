package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// Phone patterns: optional +1 country prefix with optional parenthesized
// area code, and a plain ten-digit fallback. Separators may be -, ., or space.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:\+?1[-.]?)?\s*(?:\([0-9]{3}\)|[0-9]{3})[-.]?\s*[0-9]{3}[-.]?\s*[0-9]{4}\b`),
	regexp.MustCompile(`\b[0-9]{3}[-.]?[0-9]{3}[-.]?[0-9]{4}\b`),
}

var hoursKeywords = []string{"hours", "business hours", "opening hours", "open"}

// ExtractContactInfo pulls phone numbers from the full page text and the
// first business-hours block it can find. Phone matches are appended in
// pattern order without dedup, and aggregation concatenates them as-is.
func ExtractContactInfo(doc *goquery.Document) models.ContactInfo {
	var contact models.ContactInfo

	text := doc.Text()
	for _, pattern := range phonePatterns {
		contact.PhoneNumbers = append(contact.PhoneNumbers, pattern.FindAllString(text, -1)...)
	}

	if hours := findHoursBlock(doc); hours != "" {
		contact.BusinessHours = &hours
	}

	return contact
}

// findHoursBlock returns the trimmed text of the innermost element in
// document order whose text mentions an hours keyword. Descending to the
// innermost match keeps the block from swallowing the whole page body.
func findHoursBlock(doc *goquery.Document) string {
	var sel *goquery.Selection
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	sel = descendToHoursBlock(root)
	if sel == nil {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

func descendToHoursBlock(sel *goquery.Selection) *goquery.Selection {
	if !containsHoursKeyword(sel.Text()) {
		return nil
	}
	// Prefer the first child that still contains the keyword
	var match *goquery.Selection
	sel.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if containsHoursKeyword(child.Text()) {
			match = descendToHoursBlock(child)
			return false
		}
		return true
	})
	if match != nil {
		return match
	}
	return sel
}

func containsHoursKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range hoursKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
