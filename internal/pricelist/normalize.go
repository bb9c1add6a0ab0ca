package pricelist

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyChars = regexp.MustCompile(`[€$£]`)
	nonPriceChars = regexp.MustCompile(`[^0-9.-]`)
	nonQtyChars   = regexp.MustCompile(`[^0-9.]`)
	nonAlnumChars = regexp.MustCompile(`[^0-9a-zA-Z]`)
)

// ParsePrice converts a raw price token into a number. It never fails:
// anything unparseable is 0.
//
// Supplier files mix conventions. When both '.' and ',' appear, the
// separator occurring later in the string is the decimal point and the
// other one groups thousands ("1.200,50" and "1,200.50" both give 1200.5).
// A lone comma is treated as the decimal point (European manual input).
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(currencyChars.ReplaceAllString(raw, ""))

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// IT style: 1.200,50
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US style: 1,200.50
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	price, err := strconv.ParseFloat(nonPriceChars.ReplaceAllString(s, ""), 64)
	if err != nil {
		return 0
	}
	return price
}

// ParseMinQty converts a raw minimum-order-quantity token, defaulting to 1.
func ParseMinQty(raw string) float64 {
	s := strings.Replace(raw, ",", ".", 1)
	qty, err := strconv.ParseFloat(nonQtyChars.ReplaceAllString(s, ""), 64)
	if err != nil {
		return 1
	}
	return qty
}

// CleanEAN keeps only alphanumeric characters. An empty result is valid;
// the caller substitutes the article code as fallback.
func CleanEAN(raw string) string {
	return nonAlnumChars.ReplaceAllString(raw, "")
}
