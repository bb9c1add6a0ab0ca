package store

import (
	"github.com/xelth-com/scanordergo/internal/database"
	"github.com/xelth-com/scanordergo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the durable side of batch history and the cart. All
// operations are best-effort from the caller's point of view: in-memory
// state stays the source of truth for the session even when a save
// fails, so nothing here retries.
type Repository struct {
	db *database.DB
}

// NewRepository wraps the database handle.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// LoadBatches returns the full batch history in import order.
func (r *Repository) LoadBatches() ([]models.ImportBatch, error) {
	var batches []models.ImportBatch
	err := r.db.Order("timestamp asc").Find(&batches).Error
	return batches, err
}

// AddBatch upserts one batch by id.
func (r *Repository) AddBatch(batch models.ImportBatch) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&batch).Error
}

// DeleteBatch removes one batch by id. Deleting an unknown id is not an
// error.
func (r *Repository) DeleteBatch(id string) error {
	return r.db.Delete(&models.ImportBatch{}, "id = ?", id).Error
}

// LoadCartLines returns the persisted cart.
func (r *Repository) LoadCartLines() ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.Order("timestamp desc").Find(&lines).Error
	return lines, err
}

// SaveCartLines replaces the persisted cart with the given lines in one
// transaction. Last write wins when saves stack up.
func (r *Repository) SaveCartLines(lines []models.CartLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}
