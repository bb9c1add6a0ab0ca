package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

type ScanRequest struct {
	Code     string `json:"code"`
	Identify bool   `json:"identify"`
}

type ScanResponse struct {
	Product models.Product  `json:"product"`
	Line    models.CartLine `json:"line"`
	Known   bool            `json:"known"`
	Cart    CartState       `json:"cart"`
}

// scan resolves a scanned or typed code against the loaded price lists
// and adds the result to the cart. Unknown codes become placeholder
// lines; with identify=true and a configured Gemini key the placeholder
// is enriched by the remote assist first.
func (r *Router) scan(w http.ResponseWriter, req *http.Request) {
	var body ScanRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	code := strings.TrimSpace(body.Code)
	if code == "" {
		respondError(w, http.StatusBadRequest, "Code is required")
		return
	}

	product := r.catalog.Resolve(code)
	known := product.Description != models.DescriptionUnknown || product.Brand != models.BrandGeneric

	if !known && body.Identify && r.assist != nil {
		product = r.assist.IdentifyProduct(req.Context(), code)
	}

	line := r.cart.ApplyScan(product)
	r.persistCart()

	state := r.cartState()
	r.hub.Broadcast(websocket.EventCartUpdated, state)

	respondJSON(w, http.StatusOK, ScanResponse{
		Product: product,
		Line:    line,
		Known:   known,
		Cart:    state,
	})
}
