package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

// CartState is the snapshot every cart mutation responds with and
// broadcasts over the websocket.
type CartState struct {
	Lines         []models.CartLine `json:"lines"`
	TotalQuantity int               `json:"totalQuantity"`
	TotalValue    float64           `json:"totalValue"`
}

func (r *Router) cartState() CartState {
	return CartState{
		Lines:         r.cart.Lines(),
		TotalQuantity: r.cart.TotalQuantity(),
		TotalValue:    r.cart.TotalValue(),
	}
}

func (r *Router) getCart(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.cartState())
}

type AdjustRequest struct {
	Delta int `json:"delta"`
}

func (r *Router) adjustCartLine(w http.ResponseWriter, req *http.Request) {
	key := mux.Vars(req)["key"]

	var body AdjustRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Delta == 0 {
		respondError(w, http.StatusBadRequest, "Delta must be non-zero")
		return
	}

	if !r.cart.Has(key) {
		respondError(w, http.StatusNotFound, "Cart line not found")
		return
	}

	line, exists := r.cart.AdjustQuantity(key, body.Delta)

	r.persistCart()
	state := r.cartState()
	r.hub.Broadcast(websocket.EventCartUpdated, state)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"line":    line,
		"removed": !exists,
		"cart":    state,
	})
}

func (r *Router) clearCart(w http.ResponseWriter, req *http.Request) {
	r.cart.Clear()
	r.persistCart()

	state := r.cartState()
	r.hub.Broadcast(websocket.EventCartUpdated, state)
	respondJSON(w, http.StatusOK, state)
}
