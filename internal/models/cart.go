package models

import "time"

// CartLine is a product on the current order. Quantity is strictly
// positive while the line exists; Timestamp is the instant of the last
// modification and drives most-recent-first display ordering.
type CartLine struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Product   Product   `gorm:"embedded" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

// TableName specifies the table name
func (CartLine) TableName() string {
	return "cart_lines"
}

// Total returns the line value (quantity x unit price).
func (l CartLine) Total() float64 {
	return float64(l.Quantity) * l.Product.Price
}
