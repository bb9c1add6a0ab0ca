package catalog

import (
	"testing"

	"github.com/xelth-com/scanordergo/internal/models"
)

func batchOf(id string, products ...models.Product) models.ImportBatch {
	b := models.NewImportBatch("test-"+id+".csv", products)
	b.ID = id
	return b
}

func product(code, ean string, price float64) models.Product {
	return models.Product{
		EAN:         ean,
		Code:        code,
		Description: "Product " + code,
		Brand:       "ACME",
		Price:       price,
		Unit:        models.UnitPiece,
	}
}

func TestBuildIndexDualKeys(t *testing.T) {
	idx := BuildIndex([]models.ImportBatch{
		batchOf("a", product("CODE1", "8001234567890", 19.90)),
	})

	if idx.Len() != 2 {
		t.Fatalf("expected 2 keys (ean + code), got %d", idx.Len())
	}

	byEAN, ok := idx.Get("8001234567890")
	if !ok || byEAN.Code != "CODE1" {
		t.Errorf("lookup by EAN failed: %+v ok=%v", byEAN, ok)
	}
	byCode, ok := idx.Get("CODE1")
	if !ok || byCode.EAN != "8001234567890" {
		t.Errorf("lookup by code failed: %+v ok=%v", byCode, ok)
	}
}

func TestBuildIndexShortEANUsesCode(t *testing.T) {
	// EANs of 3 chars or fewer are junk; the code is the primary key.
	idx := BuildIndex([]models.ImportBatch{
		batchOf("a", product("CODE2", "ab", 5)),
	})

	if idx.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", idx.Len())
	}
	if _, ok := idx.Get("CODE2"); !ok {
		t.Errorf("expected lookup by code to succeed")
	}
}

func TestBuildIndexLastBatchWins(t *testing.T) {
	old := product("CODE1", "8001234567890", 10.00)
	updated := product("CODE1", "8001234567890", 12.50)

	idx := BuildIndex([]models.ImportBatch{
		batchOf("a", old),
		batchOf("b", updated),
	})

	got, ok := idx.Get("8001234567890")
	if !ok {
		t.Fatal("key not found")
	}
	if got.Price != 12.50 {
		t.Errorf("price = %v, want the later batch's 12.50", got.Price)
	}
}

func TestResolveDirectAndFallback(t *testing.T) {
	widget := product("WID-100", "8001234567890", 19.90)
	gadget := product("GAD-200", "", 9.99)
	gadget.EAN = gadget.Code // parser fallback for missing barcode

	idx := BuildIndex([]models.ImportBatch{batchOf("a", widget, gadget)})

	if got := idx.Resolve("8001234567890"); got.Code != "WID-100" {
		t.Errorf("direct EAN lookup resolved %q", got.Code)
	}
	if got := idx.Resolve("GAD-200"); got.Code != "GAD-200" {
		t.Errorf("code lookup resolved %q", got.Code)
	}
	// Case-insensitive exact code match.
	if got := idx.Resolve("wid-100"); got.Code != "WID-100" {
		t.Errorf("case-insensitive lookup resolved %q", got.Code)
	}
	// Substring match for manual entry, 3+ chars only.
	if got := idx.Resolve("gad"); got.Code != "GAD-200" {
		t.Errorf("substring lookup resolved %q", got.Code)
	}
	if got := idx.Resolve("ga"); got.Code == "GAD-200" {
		t.Errorf("2-char input must not substring-match")
	}
}

func TestResolveSubstringFirstMatchWins(t *testing.T) {
	first := product("PLUG-10", "8000000000010", 1)
	second := product("PLUG-105", "8000000000105", 2)

	idx := BuildIndex([]models.ImportBatch{batchOf("a", first, second)})

	// Both codes contain "plug"; insertion order breaks the tie.
	if got := idx.Resolve("plug"); got.Code != "PLUG-10" {
		t.Errorf("tie-break resolved %q, want PLUG-10", got.Code)
	}
}

func TestResolveUnknownYieldsPlaceholder(t *testing.T) {
	idx := BuildIndex(nil)

	got := idx.Resolve("  NOPE-999 ")
	if got.Code != "NOPE-999" || got.EAN != "NOPE-999" {
		t.Errorf("placeholder keys = %q/%q, want trimmed input", got.Code, got.EAN)
	}
	if got.Price != 0 {
		t.Errorf("placeholder price = %v, want 0", got.Price)
	}
	if got.Description != models.DescriptionUnknown || got.Brand != models.BrandGeneric {
		t.Errorf("placeholder labels = %q / %q", got.Description, got.Brand)
	}
}
