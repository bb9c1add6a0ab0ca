package models

// Fixed domain defaults. Price lists in this domain are sold per piece;
// unknown scans are attributed to a generic brand so the order can still
// be completed on the spot.
const (
	UnitPiece          = "PZ"
	BrandGeneric       = "GEN"
	BrandMetel         = "METEL"
	DescriptionUnknown = "Articolo sconosciuto"
)

// Product is one catalog entry from an imported price list.
// Code is always present for a parsed product; EAN falls back to Code
// when the source row carries no real barcode.
type Product struct {
	EAN         string  `json:"ean"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	MinQty      float64 `json:"minQty,omitempty"`
}

// Key returns the resolution key used by the cart: the barcode when one
// exists, the article code otherwise.
func (p Product) Key() string {
	if p.EAN != "" {
		return p.EAN
	}
	return p.Code
}

// UnknownProduct builds the placeholder returned when a scanned code
// matches nothing in the inventory. Scanning must never dead-end, so the
// placeholder is a fully usable zero-price product.
func UnknownProduct(code string) Product {
	return Product{
		EAN:         code,
		Code:        code,
		Description: DescriptionUnknown,
		Brand:       BrandGeneric,
		Price:       0,
		Unit:        UnitPiece,
	}
}
