package main

import (
	"fmt"
	"log"

	"github.com/xelth-com/scanordergo/internal/config"
	"github.com/xelth-com/scanordergo/internal/database"
	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/pricelist"
	"github.com/xelth-com/scanordergo/internal/utils"
)

// A small semicolon-delimited price list, run through the real parser
// so seeded data always matches the import pipeline output.
const demoPriceList = `Marchio;Codice;EAN;Descrizione;Conf;Prezzo
BTICINO;L4411;8005543400111;Interruttore unipolare 16A;1;4,85
BTICINO;L4411N;8005543400128;Interruttore unipolare nero;1;5,20
VIMAR;14001;8007352140011;Deviatore 1P 16AX bianco;10;3,10
VIMAR;14008;8007352140080;Pulsante 1P NO 10A;10;3,45
GEWISS;GW10601;8011564106017;Scatola da incasso 3 moduli;1;0,95
SCHNEIDER;A9F74206;3606480088766;Interruttore magnetotermico 2P 6A;1;24,50
`

func main() {
	fmt.Println("🌱 ScanOrder Demo Data Seeder")
	fmt.Println()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.ImportBatch{},
		&models.CartLine{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Demo user (idempotent)
	var userCount int64
	db.Model(&models.UserAuth{}).Where("username = ?", "demo").Count(&userCount)
	if userCount == 0 {
		hash, err := utils.HashPassword("demo1234")
		if err != nil {
			log.Fatalf("❌ Failed to hash demo password: %v", err)
		}
		user := models.UserAuth{
			Username: "demo",
			Password: hash,
			Name:     "Demo Agent",
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ Failed to create demo user: %v", err)
		}
		fmt.Println("✅ Created user 'demo' (password: demo1234)")
	} else {
		fmt.Println("ℹ️ User 'demo' already exists, skipping")
	}

	// Demo price list
	var batchCount int64
	db.Model(&models.ImportBatch{}).Where("file_name = ?", "listino_demo.csv").Count(&batchCount)
	if batchCount > 0 {
		fmt.Println("ℹ️ Demo price list already imported, skipping")
		return
	}

	products := pricelist.Parse(demoPriceList)
	if len(products) == 0 {
		log.Fatal("❌ Demo price list parsed to zero products")
	}

	batch := models.NewImportBatch("listino_demo.csv", products)
	if err := db.Create(&batch).Error; err != nil {
		log.Fatalf("❌ Failed to save demo batch: %v", err)
	}

	fmt.Printf("✅ Imported demo price list: %d products (batch %s)\n", len(products), batch.ID)
	fmt.Println()
	fmt.Println("🎉 Done. Start the server and scan EAN 8005543400111 to try it out.")
}
