package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportBatch is the result of one price-list file ingestion. The product
// rows are stored as a single JSONB document: the catalog is only ever
// read back whole to rebuild the inventory index, so per-row columns
// would buy nothing.
type ImportBatch struct {
	ID        string                       `gorm:"primaryKey" json:"id"`
	FileName  string                       `gorm:"not null" json:"fileName"`
	Timestamp time.Time                    `gorm:"not null" json:"timestamp"`
	Products  datatypes.JSONSlice[Product] `gorm:"type:jsonb" json:"products"`
}

// TableName specifies the table name
func (ImportBatch) TableName() string {
	return "import_batches"
}

// NewImportBatch assigns a fresh ID and creation instant. Batch IDs are
// never reused; the batch is immutable after creation.
func NewImportBatch(fileName string, products []Product) ImportBatch {
	return ImportBatch{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Timestamp: time.Now(),
		Products:  datatypes.NewJSONSlice(products),
	}
}
