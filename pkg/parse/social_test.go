package parse

import (
	"net/url"
	"testing"
)

func TestExtractSocialLinks_PatternMatch(t *testing.T) {
	html := `<body>
		<a href="http://fb.com/mystore">Facebook</a>
		<a href="https://www.instagram.com/mystore">IG</a>
	</body>`

	pageURL, _ := url.Parse("https://example.com/")
	social := ExtractSocialLinks(mustDoc(t, html), pageURL)

	if social.Facebook == nil || *social.Facebook != "http://fb.com/mystore" {
		t.Errorf("facebook = %v, want http://fb.com/mystore", social.Facebook)
	}
	if social.Instagram == nil || *social.Instagram != "https://www.instagram.com/mystore" {
		t.Errorf("instagram = %v, want https://www.instagram.com/mystore", social.Instagram)
	}
	if social.Twitter != nil {
		t.Errorf("twitter should be nil, got %q", *social.Twitter)
	}
	if social.LinkedIn != nil {
		t.Errorf("linkedin should be nil, got %q", *social.LinkedIn)
	}
}

func TestExtractSocialLinks_LastAnchorWins(t *testing.T) {
	html := `<body>
		<a href="https://twitter.com/old_handle">old</a>
		<a href="https://x.com/new_handle">new</a>
	</body>`

	pageURL, _ := url.Parse("https://example.com/")
	social := ExtractSocialLinks(mustDoc(t, html), pageURL)

	if social.Twitter == nil || *social.Twitter != "https://x.com/new_handle" {
		t.Errorf("twitter = %v, want the later anchor https://x.com/new_handle", social.Twitter)
	}
}

func TestExtractSocialLinks_ResolvesRelative(t *testing.T) {
	// A relative href that resolves onto a social host should still match
	html := `<body><a href="//linkedin.com/company/acme">LI</a></body>`
	pageURL, _ := url.Parse("https://example.com/")
	social := ExtractSocialLinks(mustDoc(t, html), pageURL)

	if social.LinkedIn == nil || *social.LinkedIn != "https://linkedin.com/company/acme" {
		t.Errorf("linkedin = %v, want https://linkedin.com/company/acme", social.LinkedIn)
	}
}
