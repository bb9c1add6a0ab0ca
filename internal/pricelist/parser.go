package pricelist

import (
	"regexp"
	"strings"

	"github.com/xelth-com/scanordergo/internal/models"
)

// Column order for delimited files. This mapping is fixed by contract
// with the supplier exports:
//
//	0: Sigla marchio (Brand)
//	1: Codice prodotto produttore (Code)
//	2: Codice EAN
//	3: Descrizione prodotto
//	4: Quantità minima ordine
//	5: Prezzo al pubblico
const (
	colBrand = iota
	colCode
	colEAN
	colDescription
	colMinQty
	colPrice
)

// Fixed-width METEL row offsets.
const (
	metelMinLineLen = 50
	metelBrandEnd   = 3
	metelCodeStart  = 4
	metelCodeEnd    = 20
	metelEANEnd     = 33
	metelDescEnd    = 76
)

var metelPricePattern = regexp.MustCompile(`[0-9]{1,6}[.,][0-9]{2}`)

// Parse converts the decoded text of one uploaded price list into an
// ordered product slice. Malformed rows are silently skipped; an empty
// result means "nothing found" and is not an error. The format (tab,
// pipe or semicolon delimited vs fixed-width METEL) is auto-detected
// from the first retained line.
func Parse(content string) []models.Product {
	// Binary guard: a mis-identified spreadsheet fed in as text starts
	// with the ZIP signature or is full of control bytes.
	if looksBinary(content) {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(strings.TrimSpace(line)) > 2 {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	first := lines[0]
	tabCount := strings.Count(first, "\t")
	pipeCount := strings.Count(first, "|")
	semicolonCount := strings.Count(first, ";")

	separator := ";"
	if tabCount >= 2 {
		separator = "\t"
	} else if pipeCount >= 2 {
		separator = "|"
	}

	// No separator at all plus very long lines means fixed-width METEL.
	if separator == ";" && semicolonCount < 1 && len(first) > 100 {
		return parseFixedWidth(lines)
	}

	return parseDelimited(lines, separator)
}

func looksBinary(content string) bool {
	if strings.HasPrefix(content, "PK") {
		return true
	}
	head := content
	if len(head) > 100 {
		head = head[:100]
	}
	control := 0
	for i := 0; i < len(head); i++ {
		c := head[i]
		if c < 32 && c != '\t' && c != '\n' && c != '\r' {
			control++
		}
	}
	return control > 10
}

func parseDelimited(lines []string, separator string) []models.Product {
	var products []models.Product

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 2 {
			continue
		}

		cols := strings.Split(line, separator)
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if len(cols) < 2 {
			continue
		}

		// Header rows name their columns instead of carrying data.
		c0 := strings.ToLower(cols[colBrand])
		c1 := strings.ToLower(cols[colCode])
		if strings.Contains(c0, "sigla") || strings.Contains(c0, "marchio") || c0 == "brand" || strings.Contains(c1, "codice") {
			continue
		}

		code := cols[colCode]
		if code == "" {
			continue
		}

		brand := cols[colBrand]
		ean := CleanEAN(column(cols, colEAN))
		if ean == "" {
			ean = code
		}

		description := column(cols, colDescription)
		if len(description) < 2 {
			description = brand + " - Art. " + code
		}

		products = append(products, models.Product{
			EAN:         ean,
			Code:        code,
			Description: description,
			Brand:       brand,
			Price:       ParsePrice(columnOr(cols, colPrice, "0")),
			Unit:        models.UnitPiece,
			MinQty:      ParseMinQty(columnOr(cols, colMinQty, "1")),
		})
	}

	return products
}

// parseFixedWidth handles the legacy METEL export: fields at fixed byte
// offsets, no delimiter. The price has no defined position in this
// variant, so it is recovered heuristically: the last decimal-looking
// number on the line that is not the EAN itself.
func parseFixedWidth(lines []string) []models.Product {
	var products []models.Product

	for _, line := range lines {
		if len(line) < metelMinLineLen {
			continue
		}

		brand := strings.TrimSpace(slice(line, 0, metelBrandEnd))
		code := strings.TrimSpace(slice(line, metelCodeStart, metelCodeEnd))
		ean := strings.TrimSpace(slice(line, metelCodeEnd, metelEANEnd))
		description := strings.TrimSpace(slice(line, metelEANEnd, metelDescEnd))

		var price float64
		if raw := findMetelPrice(line, ean); raw != "" {
			price = ParsePrice(strings.Replace(raw, ",", ".", 1))
		}

		if description == "" {
			description = brand + " " + code
		}
		if brand == "" {
			brand = models.BrandMetel
		}
		resolvedEAN := ean
		if resolvedEAN == "" {
			resolvedEAN = code
		}

		products = append(products, models.Product{
			EAN:         resolvedEAN,
			Code:        code,
			Description: description,
			Brand:       brand,
			Price:       price,
			Unit:        models.UnitPiece,
			MinQty:      1,
		})
	}

	return products
}

// findMetelPrice returns the last price-shaped match on the line whose
// digits differ from the EAN field, or "" when none qualifies.
func findMetelPrice(line, ean string) string {
	var last string
	for _, m := range metelPricePattern.FindAllString(line, -1) {
		if strings.Map(keepDigit, m) != ean {
			last = m
		}
	}
	return last
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}

func column(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

func columnOr(cols []string, i int, fallback string) string {
	if i < len(cols) && cols[i] != "" {
		return cols[i]
	}
	return fallback
}

func slice(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
