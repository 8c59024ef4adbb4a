package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// ExtractMetaInfo reads the page <title> and the description/keywords meta
// tags. The name attribute is matched case-insensitively.
func ExtractMetaInfo(doc *goquery.Document) models.MetaInfo {
	var meta models.MetaInfo

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta.Title = &title
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		content, hasContent := sel.Attr("content")
		if !hasContent {
			return
		}
		switch strings.ToLower(name) {
		case "description":
			meta.Description = &content
		case "keywords":
			meta.Keywords = &content
		}
	})

	return meta
}
