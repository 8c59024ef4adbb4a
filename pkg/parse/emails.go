package parse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pre-compiled patterns for email extraction and cleaning.
var (
	// Word-boundary anchored scan pattern: alnum-edged local part, alnum/.- domain, 2+ letter TLD
	emailScanRe = regexp.MustCompile(`\b[a-zA-Z0-9](?:[a-zA-Z0-9._%+-]*[a-zA-Z0-9])?@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	// Exact validation pattern applied after cleaning
	emailExactRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9._%+-]*[a-zA-Z0-9])?@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Cleaning passes, applied in order. The scan pattern's word boundary
	// drags adjacent page text into candidates ("12:30pminfo@x.com"), so
	// leading time strings, leading digit runs, and glued-on words before
	// generic local parts are stripped before re-validation.
	timePrefixRe   = regexp.MustCompile(`^\d{1,2}:\d{2}(?:am|pm|AM|PM)?`)
	digitPrefixRe  = regexp.MustCompile(`^\d+`)
	gluedPrefixRe  = regexp.MustCompile(`[A-Za-z]+(info@|hello@|contact@|support@)`)
	junkCharRe     = regexp.MustCompile(`[^a-zA-Z0-9_\s@.]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// EmailsFromText returns the set of raw email candidates found in page text
func EmailsFromText(text string) map[string]struct{} {
	found := make(map[string]struct{})
	for _, m := range emailScanRe.FindAllString(text, -1) {
		found[m] = struct{}{}
	}
	return found
}

// EmailsFromLinks returns email candidates from mailto: anchor targets,
// with any query string (subject, body) stripped.
func EmailsFromLinks(doc *goquery.Document) map[string]struct{} {
	found := make(map[string]struct{})
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		email := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(email, '?'); i >= 0 {
			email = email[:i]
		}
		email = strings.TrimSpace(email)
		if email != "" {
			found[email] = struct{}{}
		}
	})
	return found
}

// CleanEmail strips common false-positive debris from an extracted candidate
// and re-validates it. Returns the cleaned email and true, or "" and false if
// the candidate does not survive cleaning. Idempotent: cleaning an already
// clean email returns it unchanged.
func CleanEmail(email string) (string, bool) {
	cleaned := strings.TrimSpace(email)
	cleaned = timePrefixRe.ReplaceAllString(cleaned, "")
	cleaned = digitPrefixRe.ReplaceAllString(cleaned, "")
	cleaned = gluedPrefixRe.ReplaceAllString(cleaned, "$1")
	cleaned = junkCharRe.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, "")

	if !emailExactRe.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}

// ExtractEmails runs the full email pipeline over a page: regex scan of the
// visible text, mailto link targets, cleaning, validation, and dedup.
// The result is sorted for stable output.
func ExtractEmails(doc *goquery.Document) []string {
	candidates := EmailsFromText(doc.Text())
	for email := range EmailsFromLinks(doc) {
		candidates[email] = struct{}{}
	}

	valid := make(map[string]struct{}, len(candidates))
	for candidate := range candidates {
		if cleaned, ok := CleanEmail(candidate); ok {
			valid[cleaned] = struct{}{}
		}
	}

	emails := make([]string, 0, len(valid))
	for email := range valid {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}
