package catalog

import (
	"strings"

	"github.com/xelth-com/scanordergo/internal/models"
)

// Keys shorter than this are article codes, not barcodes, and do not
// qualify as a primary lookup key on their own.
const minBarcodeLen = 4

// Index is the derived lookup table over every imported batch. It is a
// disposable projection: whenever batch history changes it is rebuilt
// from scratch rather than patched. Keys keep their first-insertion
// position so fallback scans are deterministic.
type Index struct {
	keys     []string
	products map[string]models.Product
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{products: make(map[string]models.Product)}
}

// BuildIndex projects the batches, in import order, into a key lookup.
// Each product registers under its barcode when it has a plausible one,
// its article code otherwise, and additionally under the code when the
// two differ. Later registrations of a shared key silently shadow
// earlier ones: last batch wins, then last row within the batch.
func BuildIndex(batches []models.ImportBatch) *Index {
	idx := NewIndex()
	for _, batch := range batches {
		for _, p := range batch.Products {
			key := p.Code
			if len(p.EAN) >= minBarcodeLen {
				key = p.EAN
			}
			idx.register(key, p)
			if p.Code != key {
				idx.register(p.Code, p)
			}
		}
	}
	return idx
}

func (idx *Index) register(key string, p models.Product) {
	if key == "" {
		return
	}
	if _, exists := idx.products[key]; !exists {
		idx.keys = append(idx.keys, key)
	}
	idx.products[key] = p
}

// Get returns the product registered under key.
func (idx *Index) Get(key string) (models.Product, bool) {
	p, ok := idx.products[key]
	return p, ok
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Products returns the indexed products in key-insertion order. A
// product registered under two keys appears twice, mirroring the key
// space the fallback scan iterates.
func (idx *Index) Products() []models.Product {
	out := make([]models.Product, 0, len(idx.keys))
	for _, key := range idx.keys {
		out = append(out, idx.products[key])
	}
	return out
}

// Resolve maps a scanned or typed code to the best-matching product.
// It never fails: an unmatched code yields a usable zero-price
// placeholder so the scan-and-keep-moving workflow is never interrupted.
//
// Match order: direct key lookup, then a linear scan over the indexed
// products testing exact EAN, case-insensitive exact code, and (for
// manual entry, inputs of 3+ chars) case-insensitive substring of the
// input inside the code. First candidate in insertion order wins.
func (idx *Index) Resolve(raw string) models.Product {
	code := strings.TrimSpace(raw)

	if p, ok := idx.products[code]; ok {
		return p
	}

	lower := strings.ToLower(code)
	for _, key := range idx.keys {
		p := idx.products[key]
		if p.EAN == code {
			return p
		}
		candidate := strings.ToLower(p.Code)
		if candidate == lower {
			return p
		}
		if len(code) >= 3 && strings.Contains(candidate, lower) {
			return p
		}
	}

	return models.UnknownProduct(code)
}
