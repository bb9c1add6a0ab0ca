package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/xelth-com/scanordergo/internal/models"
)

// OrderPDF renders the cart as an A4 order summary. The QR code in the
// corner carries the Mexal payload so the back office can scan the
// printed sheet straight into the management system.
func OrderPDF(lines []models.CartLine) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Ordine ScanOrder", "", 1, "L", false, 0, "")

	var total float64
	var totalQty int
	for _, line := range lines {
		total += line.Total()
		totalQty += line.Quantity
	}

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, time.Now().Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Totale: EUR %.2f (%d pz)", total, totalQty), "", 1, "L", false, 0, "")

	// QR with the legacy import payload, top right
	if payload := MexalCSV(lines); payload != "" {
		qrPng, err := qrcode.Encode(payload, qrcode.Low, 256)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("order_qr", opts, bytes.NewReader(qrPng))
		pdf.ImageOptions("order_qr", 170, 10, 28, 28, false, opts, 0, "")
	}

	pdf.Ln(4)

	// Header row
	colWidths := []float64{35, 25, 75, 15, 20, 20}
	headers := []string{"Codice", "Brand", "Descrizione", "Qta", "Prezzo", "Totale"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range lines {
		desc := line.Product.Description
		if len(desc) > 45 {
			desc = desc[:45]
		}
		pdf.CellFormat(colWidths[0], 6, line.Product.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, line.Product.Brand, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, fmt.Sprintf("%.2f", line.Product.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 6, fmt.Sprintf("%.2f", line.Total()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
