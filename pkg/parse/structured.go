package parse

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// ExtractStructuredData runs the JSON-LD and microdata extractors over the
// page and classifies each discovered entity by its declared schema.org type.
// At most one Organization item is kept (first in document order wins);
// Product/Service/Other items accumulate.
func ExtractStructuredData(doc *goquery.Document) []models.StructuredItem {
	var items []models.StructuredItem
	orgSeen := false

	appendItem := func(item models.StructuredItem) {
		if item.Kind == models.KindOrganization {
			if orgSeen {
				return
			}
			orgSeen = true
		}
		items = append(items, item)
	}

	for _, item := range extractJSONLD(doc) {
		appendItem(item)
	}
	for _, item := range extractMicrodata(doc) {
		appendItem(item)
	}

	return items
}

// classifyType maps a declared schema type name to an ItemKind
func classifyType(typeName string) models.ItemKind {
	lower := strings.ToLower(typeName)
	switch {
	case lower == "product" || strings.HasSuffix(lower, "product"):
		return models.KindProduct
	case lower == "service" || strings.HasSuffix(lower, "service"):
		return models.KindService
	case strings.HasSuffix(lower, "organization") ||
		strings.HasSuffix(lower, "business") ||
		lower == "corporation":
		return models.KindOrganization
	default:
		return models.KindOther
	}
}

// --- JSON-LD ---

// extractJSONLD parses every <script type="application/ld+json"> block.
// Malformed JSON degrades gracefully: the block is skipped.
func extractJSONLD(doc *goquery.Document) []models.StructuredItem {
	var items []models.StructuredItem

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return
		}
		walkJSONLD(payload, &items)
	})

	return items
}

// walkJSONLD descends into arrays and @graph containers looking for typed entities
func walkJSONLD(node any, items *[]models.StructuredItem) {
	switch v := node.(type) {
	case []any:
		for _, child := range v {
			walkJSONLD(child, items)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			walkJSONLD(graph, items)
		}
		typeName := jsonLDType(v)
		if typeName == "" {
			return
		}
		*items = append(*items, jsonLDItem(typeName, v))
	}
}

// jsonLDType returns the entity's declared @type, taking the first entry
// when @type is an array.
func jsonLDType(entity map[string]any) string {
	switch t := entity["@type"].(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func jsonLDItem(typeName string, entity map[string]any) models.StructuredItem {
	item := models.StructuredItem{
		Kind:         classifyType(typeName),
		Type:         typeName,
		Name:         jsonString(entity["name"]),
		Description:  jsonString(entity["description"]),
		Category:     jsonString(entity["category"]),
		URL:          jsonString(entity["url"]),
		Image:        jsonImage(entity["image"]),
		FoundingDate: jsonString(entity["foundingDate"]),
	}

	// Price lives on the entity itself or inside offers
	item.Price = jsonString(entity["price"])
	if item.Price == "" {
		item.Price = jsonOfferPrice(entity["offers"])
	}

	item.Address = jsonAddress(entity["address"])
	return item
}

// jsonString renders a scalar JSON value as a string; numbers keep their
// literal form, everything non-scalar becomes "".
func jsonString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		b, _ := json.Marshal(s)
		return string(b)
	case bool:
		if s {
			return "true"
		}
		return "false"
	}
	return ""
}

func jsonImage(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		return jsonString(img["url"])
	case []any:
		if len(img) > 0 {
			return jsonImage(img[0])
		}
	}
	return ""
}

func jsonOfferPrice(v any) string {
	switch offers := v.(type) {
	case map[string]any:
		return jsonString(offers["price"])
	case []any:
		if len(offers) > 0 {
			return jsonOfferPrice(offers[0])
		}
	}
	return ""
}

func jsonAddress(v any) string {
	switch addr := v.(type) {
	case string:
		return strings.TrimSpace(addr)
	case map[string]any:
		if street := jsonString(addr["streetAddress"]); street != "" {
			return street
		}
	case []any:
		if len(addr) > 0 {
			return jsonAddress(addr[0])
		}
	}
	return ""
}

// --- Microdata ---

// microdataProps maps itemprop names onto StructuredItem fields
var microdataProps = map[string]func(*models.StructuredItem, string){
	"name":          func(i *models.StructuredItem, v string) { i.Name = v },
	"description":   func(i *models.StructuredItem, v string) { i.Description = v },
	"price":         func(i *models.StructuredItem, v string) { i.Price = v },
	"category":      func(i *models.StructuredItem, v string) { i.Category = v },
	"url":           func(i *models.StructuredItem, v string) { i.URL = v },
	"image":         func(i *models.StructuredItem, v string) { i.Image = v },
	"streetAddress": func(i *models.StructuredItem, v string) { i.Address = v },
	"foundingDate":  func(i *models.StructuredItem, v string) { i.FoundingDate = v },
}

// extractMicrodata walks itemscope elements carrying an itemtype. Properties
// of nested scopes (e.g. an Offer inside a Product) are credited to the
// innermost scope, except price, which bubbles to the enclosing item the way
// schema.org offers carry product prices.
func extractMicrodata(doc *goquery.Document) []models.StructuredItem {
	var items []models.StructuredItem

	doc.Find("[itemscope][itemtype]").Each(func(_ int, scope *goquery.Selection) {
		// Skip scopes nested inside another typed scope; their properties
		// are folded into the outer item below.
		if scope.ParentsFiltered("[itemscope][itemtype]").Length() > 0 {
			return
		}

		typeAttr, _ := scope.Attr("itemtype")
		typeName := schemaTypeName(typeAttr)
		if typeName == "" {
			return
		}

		item := models.StructuredItem{Kind: classifyType(typeName), Type: typeName}
		scope.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
			name, _ := prop.Attr("itemprop")
			assign, known := microdataProps[name]
			if !known {
				return
			}
			value := microdataValue(prop)
			if value == "" {
				return
			}
			// Direct properties only, unless the value bubbles (price, streetAddress)
			if prop.ParentsFiltered("[itemscope]").First().IsSelection(scope) ||
				name == "price" || name == "streetAddress" {
				assign(&item, value)
			}
		})

		items = append(items, item)
	})

	return items
}

// schemaTypeName strips the schema.org URL prefix from an itemtype attribute
func schemaTypeName(itemtype string) string {
	itemtype = strings.TrimSpace(itemtype)
	if itemtype == "" {
		return ""
	}
	if i := strings.LastIndexByte(itemtype, '/'); i >= 0 {
		itemtype = itemtype[i+1:]
	}
	return itemtype
}

// microdataValue reads a property value: content attribute first, then
// href/src for link-like elements, then the element text.
func microdataValue(prop *goquery.Selection) string {
	if content, ok := prop.Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	if href, ok := prop.Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	if src, ok := prop.Attr("src"); ok {
		return strings.TrimSpace(src)
	}
	return strings.TrimSpace(prop.Text())
}
