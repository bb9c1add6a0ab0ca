package export

import (
	"fmt"
	"strings"

	"github.com/xelth-com/scanordergo/internal/models"
)

// OrderCSVHeader is the human-facing export header.
const OrderCSVHeader = "Codice;Descrizione;Marca;Quantità;Prezzo Unitario;Totale"

// OrderCSV renders the cart as a semicolon-delimited order summary for
// spreadsheets and e-mail.
func OrderCSV(lines []models.CartLine) string {
	var b strings.Builder
	b.WriteString(OrderCSVHeader)
	for _, line := range lines {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s;%s;%s;%d;%.2f;%.2f",
			line.Product.Code,
			line.Product.Description,
			line.Product.Brand,
			line.Quantity,
			line.Product.Price,
			line.Total(),
		)
	}
	return b.String()
}

// MexalCSV renders the cart in the fixed import format of the legacy
// management system: code;quantity;price with a comma decimal, CRLF
// line endings, no header.
func MexalCSV(lines []models.CartLine) string {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		price := strings.Replace(fmt.Sprintf("%.2f", line.Product.Price), ".", ",", 1)
		rows = append(rows, fmt.Sprintf("%s;%d;%s", line.Product.Code, line.Quantity, price))
	}
	return strings.Join(rows, "\r\n")
}

// ShareText renders the cart as plain text for messaging apps.
func ShareText(lines []models.CartLine) string {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, fmt.Sprintf("%dpz - %s - %s",
			line.Quantity, line.Product.Code, line.Product.Description))
	}
	return strings.Join(rows, "\n")
}
