package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook distinguishes a readable-but-empty spreadsheet from a
// corrupt one and from the parser's "no valid rows" outcome.
var ErrEmptyWorkbook = errors.New("workbook has no rows")

var cellCleaner = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// SpreadsheetToText decodes a binary .xls/.xlsx payload into
// tab-separated text: first sheet only, row by row, cell values
// stringified with their display formatting, embedded tab/newline
// characters flattened to spaces. The result feeds straight into the
// delimited price-list parser.
func SpreadsheetToText(payload []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", ErrEmptyWorkbook
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strings.TrimSpace(cellCleaner.Replace(cell)))
		}
	}
	return b.String(), nil
}
