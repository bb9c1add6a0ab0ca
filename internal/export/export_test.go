package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xelth-com/scanordergo/internal/models"
)

func sampleLines() []models.CartLine {
	now := time.Now()
	return []models.CartLine{
		{
			Key: "8001234567890",
			Product: models.Product{
				EAN: "8001234567890", Code: "WID-100", Description: "Widget",
				Brand: "ACME", Price: 19.90, Unit: models.UnitPiece,
			},
			Quantity: 2, Timestamp: now,
		},
		{
			Key: "GAD-200",
			Product: models.Product{
				EAN: "GAD-200", Code: "GAD-200", Description: "Gadget",
				Brand: "ACME", Price: 9.99, Unit: models.UnitPiece,
			},
			Quantity: 1, Timestamp: now,
		},
	}
}

func TestOrderCSV(t *testing.T) {
	got := OrderCSV(sampleLines())

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != OrderCSVHeader {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "WID-100;Widget;ACME;2;19.90;39.80" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestMexalCSVFormat(t *testing.T) {
	got := MexalCSV(sampleLines())

	if !strings.Contains(got, "\r\n") {
		t.Error("legacy format requires CRLF line endings")
	}
	rows := strings.Split(got, "\r\n")
	if rows[0] != "WID-100;2;19,90" {
		t.Errorf("row = %q, want comma-decimal price", rows[0])
	}
}

func TestMexalCSVRoundTripTotals(t *testing.T) {
	lines := sampleLines()
	got := MexalCSV(lines)

	// Re-deriving quantity x price from the export must reproduce the
	// displayed line totals to two decimal places.
	for i, row := range strings.Split(got, "\r\n") {
		cols := strings.Split(row, ";")
		if len(cols) != 3 {
			t.Fatalf("row %d: %q", i, row)
		}
		qty, err := strconv.Atoi(cols[1])
		if err != nil {
			t.Fatalf("row %d quantity: %v", i, err)
		}
		price, err := strconv.ParseFloat(strings.Replace(cols[2], ",", ".", 1), 64)
		if err != nil {
			t.Fatalf("row %d price: %v", i, err)
		}

		derived := fmt.Sprintf("%.2f", float64(qty)*price)
		displayed := fmt.Sprintf("%.2f", lines[i].Total())
		if derived != displayed {
			t.Errorf("row %d: derived total %s, displayed %s", i, derived, displayed)
		}
	}
}

func TestShareText(t *testing.T) {
	got := ShareText(sampleLines())
	if !strings.HasPrefix(got, "2pz - WID-100 - Widget") {
		t.Errorf("unexpected share text: %q", got)
	}
}

func TestEmptyCartExports(t *testing.T) {
	if got := MexalCSV(nil); got != "" {
		t.Errorf("empty cart mexal = %q", got)
	}
	if got := OrderCSV(nil); got != OrderCSVHeader {
		t.Errorf("empty cart csv = %q", got)
	}
}

func TestOrderPDF(t *testing.T) {
	pdfBytes, err := OrderPDF(sampleLines())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}

	// Empty cart still renders a valid (if useless) document.
	if _, err := OrderPDF(nil); err != nil {
		t.Errorf("empty cart: %v", err)
	}
}
