package parse

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractInternalLinks resolves every anchor href against the page URL and
// keeps those whose host exactly equals the crawl root's host, port
// included. No subdomain normalization: shop.example.com and example.com
// are different sites. Returned URLs are normalized and deduplicated, in
// document order.
func ExtractInternalLinks(doc *goquery.Document, pageURL *url.URL, rootHost string) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		resolved, err := pageURL.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return // mailto:, tel:, javascript: etc.
		}
		if !strings.EqualFold(resolved.Host, rootHost) {
			return
		}

		normalized := NormalizeURL(resolved)
		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	})

	return links
}
