package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

func (r *Router) listBatches(w http.ResponseWriter, req *http.Request) {
	batches := r.catalog.Batches()
	summaries := make([]BatchSummary, 0, len(batches))
	for _, b := range batches {
		summaries = append(summaries, summarize(b))
	}
	respondJSON(w, http.StatusOK, summaries)
}

// getBatch returns one batch with its product rows. The optional q=
// parameter filters rows by code, EAN, brand or description,
// case-insensitive substring.
func (r *Router) getBatch(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	batch, ok := r.catalog.Batch(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	products := []models.Product(batch.Products)
	if q := strings.TrimSpace(req.URL.Query().Get("q")); q != "" {
		products = filterProducts(products, q)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        batch.ID,
		"fileName":  batch.FileName,
		"timestamp": batch.Timestamp.UnixMilli(),
		"products":  products,
	})
}

func filterProducts(products []models.Product, query string) []models.Product {
	needle := strings.ToLower(query)
	matched := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Code), needle) ||
			strings.Contains(strings.ToLower(p.EAN), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (r *Router) deleteBatch(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if _, ok := r.catalog.Batch(id); !ok {
		respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	r.catalog.RemoveBatch(id)
	if r.repo != nil {
		if err := r.repo.DeleteBatch(id); err != nil {
			log.Printf("⚠️ Batch delete failed for %s: %v", id, err)
		}
	}

	r.hub.Broadcast(websocket.EventBatchDeleted, map[string]string{"id": id})
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
