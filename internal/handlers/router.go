package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/scanordergo/internal/ai"
	"github.com/xelth-com/scanordergo/internal/cart"
	"github.com/xelth-com/scanordergo/internal/catalog"
	"github.com/xelth-com/scanordergo/internal/config"
	"github.com/xelth-com/scanordergo/internal/database"
	"github.com/xelth-com/scanordergo/internal/middleware"
	"github.com/xelth-com/scanordergo/internal/store"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

// Router wraps the mux router with everything the handlers touch: the
// in-memory catalog and cart (source of truth for the session) and the
// best-effort persistence behind them.
type Router struct {
	*mux.Router
	cfg     *config.Config
	db      *database.DB
	catalog *catalog.Store
	cart    *cart.Ledger
	repo    *store.Repository
	hub     *websocket.Hub
	assist  *ai.Assist
}

// NewRouter creates a new HTTP router with all routes. assist may be
// nil when no Gemini key is configured.
func NewRouter(cfg *config.Config, db *database.DB, catalogStore *catalog.Store, ledger *cart.Ledger, repo *store.Repository, hub *websocket.Hub, assist *ai.Assist) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		cfg:     cfg,
		db:      db,
		catalog: catalogStore,
		cart:    ledger,
		repo:    repo,
		hub:     hub,
		assist:  assist,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Live updates
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/import", r.importPriceList).Methods("POST")

	api.HandleFunc("/batches", r.listBatches).Methods("GET")
	api.HandleFunc("/batches/{id}", r.getBatch).Methods("GET")
	api.HandleFunc("/batches/{id}", r.deleteBatch).Methods("DELETE")

	api.HandleFunc("/scan", r.scan).Methods("POST")

	api.HandleFunc("/cart", r.getCart).Methods("GET")
	api.HandleFunc("/cart", r.clearCart).Methods("DELETE")
	api.HandleFunc("/cart/{key}/adjust", r.adjustCartLine).Methods("POST")

	api.HandleFunc("/export/csv", r.exportCSV).Methods("GET")
	api.HandleFunc("/export/mexal", r.exportMexal).Methods("GET")
	api.HandleFunc("/export/pdf", r.exportPDF).Methods("GET")
	api.HandleFunc("/export/share", r.exportShare).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "scanorder",
	})
}

// persistCart pushes the current cart to storage without blocking the
// caller. A failed save is logged and forgotten: the in-memory ledger
// stays authoritative for the session, and the next mutation saves
// again (last write wins).
func (r *Router) persistCart() {
	if r.repo == nil {
		return
	}
	lines := r.cart.Lines()
	go func() {
		if err := r.repo.SaveCartLines(lines); err != nil {
			log.Printf("⚠️ Cart save failed: %v", err)
		}
	}()
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
