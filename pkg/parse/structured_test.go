package parse

import (
	"testing"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

func TestExtractStructuredData_JSONLD(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Organization",
		"name": "Acme Corp",
		"foundingDate": "2010-05-01",
		"address": {"@type": "PostalAddress", "streetAddress": "123 Main St"}
	}
	</script>
	<script type="application/ld+json">
	{
		"@type": "Product",
		"name": "Widget",
		"description": "A fine widget",
		"offers": {"@type": "Offer", "price": 19.99}
	}
	</script>
	</head><body></body></html>`

	items := ExtractStructuredData(mustDoc(t, html))
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}

	org := items[0]
	if org.Kind != models.KindOrganization || org.Name != "Acme Corp" {
		t.Errorf("org = %+v, want Organization 'Acme Corp'", org)
	}
	if org.FoundingDate != "2010-05-01" {
		t.Errorf("foundingDate = %q", org.FoundingDate)
	}
	if org.Address != "123 Main St" {
		t.Errorf("address = %q, want street address", org.Address)
	}

	product := items[1]
	if product.Kind != models.KindProduct || product.Name != "Widget" {
		t.Errorf("product = %+v, want Product 'Widget'", product)
	}
	if product.Price != "19.99" {
		t.Errorf("price = %q, want 19.99 from the offer", product.Price)
	}
}

func TestExtractStructuredData_FirstOrganizationWins(t *testing.T) {
	html := `<head>
	<script type="application/ld+json">{"@type": "LocalBusiness", "name": "First"}</script>
	<script type="application/ld+json">{"@type": "Organization", "name": "Second"}</script>
	</head>`

	items := ExtractStructuredData(mustDoc(t, html))
	orgs := 0
	for _, item := range items {
		if item.Kind == models.KindOrganization {
			orgs++
			if item.Name != "First" {
				t.Errorf("kept organization %q, want the first one", item.Name)
			}
		}
	}
	if orgs != 1 {
		t.Errorf("expected exactly 1 organization item, got %d", orgs)
	}
}

func TestExtractStructuredData_GraphContainer(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@graph": [
		{"@type": "Service", "name": "Lawn Care", "category": "Gardening"}
	]}
	</script>`

	items := ExtractStructuredData(mustDoc(t, html))
	if len(items) != 1 || items[0].Kind != models.KindService {
		t.Fatalf("expected 1 service from @graph, got %+v", items)
	}
	if items[0].Category != "Gardening" {
		t.Errorf("category = %q", items[0].Category)
	}
}

func TestExtractStructuredData_MalformedJSONSkipped(t *testing.T) {
	html := `<head>
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">{"@type": "Product", "name": "Ok"}</script>
	</head>`

	items := ExtractStructuredData(mustDoc(t, html))
	if len(items) != 1 || items[0].Name != "Ok" {
		t.Fatalf("expected the valid block only, got %+v", items)
	}
}

func TestExtractStructuredData_Microdata(t *testing.T) {
	html := `<body>
	<div itemscope itemtype="https://schema.org/Product">
		<span itemprop="name">Gadget</span>
		<span itemprop="description">Handy gadget</span>
		<div itemprop="offers" itemscope itemtype="https://schema.org/Offer">
			<meta itemprop="price" content="42.00">
		</div>
	</div>
	</body>`

	items := ExtractStructuredData(mustDoc(t, html))
	if len(items) != 1 {
		t.Fatalf("expected 1 microdata item, got %d: %+v", len(items), items)
	}
	item := items[0]
	if item.Kind != models.KindProduct || item.Name != "Gadget" {
		t.Errorf("item = %+v, want Product 'Gadget'", item)
	}
	if item.Price != "42.00" {
		t.Errorf("price = %q, want the nested offer price to bubble up", item.Price)
	}
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		typeName string
		want     models.ItemKind
	}{
		{"Product", models.KindProduct},
		{"IndividualProduct", models.KindProduct},
		{"Service", models.KindService},
		{"FinancialService", models.KindService},
		{"Organization", models.KindOrganization},
		{"LocalBusiness", models.KindOrganization},
		{"Corporation", models.KindOrganization},
		{"WebSite", models.KindOther},
	}
	for _, tt := range tests {
		if got := classifyType(tt.typeName); got != tt.want {
			t.Errorf("classifyType(%q) = %q, want %q", tt.typeName, got, tt.want)
		}
	}
}
