package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/xelth-com/scanordergo/internal/decoder"
	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/pricelist"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

const maxUploadBytes = 32 << 20

// BatchSummary is the list representation of a batch; the product rows
// stay out of it to keep the batch list light.
type BatchSummary struct {
	ID           string `json:"id"`
	FileName     string `json:"fileName"`
	Timestamp    int64  `json:"timestamp"`
	ProductCount int    `json:"productCount"`
}

func summarize(b models.ImportBatch) BatchSummary {
	return BatchSummary{
		ID:           b.ID,
		FileName:     b.FileName,
		Timestamp:    b.Timestamp.UnixMilli(),
		ProductCount: len(b.Products),
	}
}

// importPriceList ingests one uploaded price-list file: spreadsheet
// payloads go through the decoder, everything else is treated as text.
// With ai=1 and a configured Gemini key the raw text goes to the remote
// assist instead of the deterministic parser.
func (r *Router) importPriceList(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	fileName := header.Filename
	text := string(payload)

	if isSpreadsheet(fileName) {
		text, err = decoder.SpreadsheetToText(payload)
		if err != nil {
			// Distinct from "no valid rows": the workbook itself is
			// unreadable or empty.
			log.Printf("⚠️ Spreadsheet decode failed for %s: %v", fileName, err)
			respondError(w, http.StatusUnprocessableEntity, "Could not read the spreadsheet. The file may be corrupt or empty.")
			return
		}
	}

	useAI := req.FormValue("ai") == "1" || req.FormValue("ai") == "true"

	var products []models.Product
	if useAI && r.assist != nil {
		products = r.assist.ParsePriceList(req.Context(), text)
	} else {
		products = pricelist.Parse(text)
	}

	if len(products) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "No valid products found. Expected column order: Brand, Code, EAN, Description, MinQty, Price.")
		return
	}

	batch := models.NewImportBatch(fileName, products)

	// Memory first, storage best-effort
	r.catalog.AddBatch(batch)
	if r.repo != nil {
		if err := r.repo.AddBatch(batch); err != nil {
			log.Printf("⚠️ Batch save failed for %s: %v", batch.ID, err)
		}
	}

	summary := summarize(batch)
	r.hub.Broadcast(websocket.EventBatchImported, summary)
	respondJSON(w, http.StatusCreated, summary)
}

func isSpreadsheet(fileName string) bool {
	lower := strings.ToLower(fileName)
	return strings.HasSuffix(lower, ".xls") || strings.HasSuffix(lower, ".xlsx")
}
