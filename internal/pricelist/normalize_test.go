package pricelist

import "testing"

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"1.234,56", 1234.56}, // IT thousands
		{"1,234.56", 1234.56}, // US thousands
		{"19,90", 19.90},      // lone comma is decimal
		{"19.90", 19.90},
		{"€ 5", 5},
		{"$12.50", 12.50},
		{"1200.5", 1200.5},
		{"abc", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		got := ParsePrice(tc.raw)
		if got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseMinQty(t *testing.T) {
	testCases := []struct {
		raw  string
		want float64
	}{
		{"5", 5},
		{"2,5", 2.5},
		{"10 pz", 10},
		{"", 1},
		{"n/a", 1},
	}

	for _, tc := range testCases {
		got := ParseMinQty(tc.raw)
		if got != tc.want {
			t.Errorf("ParseMinQty(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCleanEAN(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"8001234567890", "8001234567890"},
		{" 80-0123.456 ", "800123456"},
		{"ABC123", "ABC123"},
		{"---", ""},
	}

	for _, tc := range testCases {
		got := CleanEAN(tc.raw)
		if got != tc.want {
			t.Errorf("CleanEAN(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
