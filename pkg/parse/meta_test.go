package parse

import "testing"

func TestExtractMetaInfo(t *testing.T) {
	html := `<html><head>
		<title>Acme Widgets</title>
		<meta name="Description" content="Widgets for every occasion">
		<meta name="keywords" content="widgets, acme">
	</head><body></body></html>`

	meta := ExtractMetaInfo(mustDoc(t, html))

	if meta.Title == nil || *meta.Title != "Acme Widgets" {
		t.Errorf("title = %v", meta.Title)
	}
	if meta.Description == nil || *meta.Description != "Widgets for every occasion" {
		t.Errorf("description = %v (name attribute match should be case-insensitive)", meta.Description)
	}
	if meta.Keywords == nil || *meta.Keywords != "widgets, acme" {
		t.Errorf("keywords = %v", meta.Keywords)
	}
}

func TestExtractMetaInfo_MissingFields(t *testing.T) {
	meta := ExtractMetaInfo(mustDoc(t, `<html><head></head><body></body></html>`))
	if meta.Title != nil || meta.Description != nil || meta.Keywords != nil {
		t.Errorf("expected all nil for a page without meta, got %+v", meta)
	}
}
