package parse

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// One fixed pattern per platform, matched case-insensitively against the
// resolved absolute href.
var socialPatterns = []struct {
	pattern *regexp.Regexp
	assign  func(*models.SocialLinks, string)
}{
	{regexp.MustCompile(`(?i)facebook\.com|fb\.com`), func(s *models.SocialLinks, u string) { s.Facebook = &u }},
	{regexp.MustCompile(`(?i)twitter\.com|x\.com`), func(s *models.SocialLinks, u string) { s.Twitter = &u }},
	{regexp.MustCompile(`(?i)instagram\.com`), func(s *models.SocialLinks, u string) { s.Instagram = &u }},
	{regexp.MustCompile(`(?i)linkedin\.com`), func(s *models.SocialLinks, u string) { s.LinkedIn = &u }},
}

// ExtractSocialLinks scans every anchor on the page for known social media
// hosts. Relative hrefs are resolved against the page URL first. Later
// anchors overwrite earlier ones for the same platform.
func ExtractSocialLinks(doc *goquery.Document, pageURL *url.URL) models.SocialLinks {
	var social models.SocialLinks

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			resolved, err := pageURL.Parse(href)
			if err != nil {
				return
			}
			href = resolved.String()
		}

		for _, sp := range socialPatterns {
			if sp.pattern.MatchString(href) {
				sp.assign(&social, href)
			}
		}
	})

	return social
}
