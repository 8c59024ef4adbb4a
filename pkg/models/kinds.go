package models

// BusinessSize categorizes the inferred size of a business
type BusinessSize string

const (
	SizeUnknown BusinessSize = "unknown"
	SizeSmall   BusinessSize = "small"
	SizeMedium  BusinessSize = "medium"
	SizeLarge   BusinessSize = "large"
)

// String implements fmt.Stringer for logging
func (s BusinessSize) String() string {
	if s == "" {
		return string(SizeUnknown)
	}
	return string(s)
}

// IsValid returns true if the size is a known value
func (s BusinessSize) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeUnknown:
		return true
	}
	return false
}

// PriceRange categorizes pricing positioning
type PriceRange string

const (
	PriceUnknown  PriceRange = "unknown"
	PriceBudget   PriceRange = "budget"
	PriceMidRange PriceRange = "mid-range"
	PricePremium  PriceRange = "premium"
)

// String implements fmt.Stringer for logging
func (p PriceRange) String() string {
	if p == "" {
		return string(PriceUnknown)
	}
	return string(p)
}

// IsValid returns true if the price range is a known value
func (p PriceRange) IsValid() bool {
	switch p {
	case PriceBudget, PriceMidRange, PricePremium, PriceUnknown:
		return true
	}
	return false
}

// SalesModel categorizes how a business sells
type SalesModel string

const (
	SalesUnknown      SalesModel = "unknown"
	SalesDirect       SalesModel = "direct"
	SalesSubscription SalesModel = "subscription"
	SalesMarketplace  SalesModel = "marketplace"
	SalesHybrid       SalesModel = "hybrid"
)

// String implements fmt.Stringer for logging
func (m SalesModel) String() string {
	if m == "" {
		return string(SalesUnknown)
	}
	return string(m)
}

// IsValid returns true if the sales model is a known value
func (m SalesModel) IsValid() bool {
	switch m {
	case SalesDirect, SalesSubscription, SalesMarketplace, SalesHybrid, SalesUnknown:
		return true
	}
	return false
}

// ItemKind tags a structured-data item by its declared schema.org type.
// Constructed at parse time so merge logic handles variants exhaustively
// instead of probing attributes at runtime.
type ItemKind string

const (
	KindProduct      ItemKind = "product"
	KindService      ItemKind = "service"
	KindOrganization ItemKind = "organization"
	KindOther        ItemKind = "other"
)

// RecordType distinguishes product rows from service rows in the output
type RecordType string

const (
	RecordProduct RecordType = "product"
	RecordService RecordType = "service"
)
