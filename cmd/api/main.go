package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/scanordergo/internal/ai"
	"github.com/xelth-com/scanordergo/internal/cart"
	"github.com/xelth-com/scanordergo/internal/catalog"
	"github.com/xelth-com/scanordergo/internal/config"
	"github.com/xelth-com/scanordergo/internal/database"
	"github.com/xelth-com/scanordergo/internal/handlers"
	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/store"
	"github.com/xelth-com/scanordergo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.ImportBatch{},
		&models.CartLine{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	repo := store.NewRepository(db)

	// 4. Rehydrate the in-memory state from storage
	catalogStore := catalog.NewStore()
	batches, err := repo.LoadBatches()
	if err != nil {
		log.Printf("⚠️ Could not load batches: %v", err)
	} else {
		catalogStore.SetBatches(batches)
		log.Printf("✅ Loaded %d price-list batches", len(batches))
	}

	ledger := cart.NewLedger()
	lines, err := repo.LoadCartLines()
	if err != nil {
		log.Printf("⚠️ Could not load cart: %v", err)
	} else {
		ledger.Load(lines)
		log.Printf("✅ Restored cart with %d lines", ledger.Len())
	}

	// 5. Live update hub
	hub := websocket.NewHub()
	go hub.Run()

	// 6. Optional Gemini assist
	var assist *ai.Assist
	if cfg.Gemini.APIKey != "" {
		assist, err = ai.NewAssist(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️ AI assist unavailable: %v", err)
			assist = nil
		} else {
			defer assist.Close()
			log.Printf("✅ AI assist ready (model: %s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("ℹ️ GEMINI_API_KEY not set, AI assist disabled")
	}

	// 7. Set up HTTP router
	router := handlers.NewRouter(cfg, db, catalogStore, ledger, repo, hub, assist)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Flush the cart one last time so nothing scanned is lost
	if err := repo.SaveCartLines(ledger.Lines()); err != nil {
		log.Printf("⚠️ Final cart save failed: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
