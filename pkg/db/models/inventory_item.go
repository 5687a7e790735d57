package models

import "time"

// InventoryItem tracks stock of a kitchen ingredient.
type InventoryItem struct {
	ID            string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Quantity      float64   `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Unit          string    `gorm:"column:unit;type:text;not null" json:"unit"`
	ReorderLevel  float64   `gorm:"column:reorder_level;not null;default:0" json:"reorderLevel"`
	LastRestocked time.Time `gorm:"column:last_restocked" json:"lastRestocked"`
}

// NeedsReorder reports whether stock has fallen to or below the reorder level.
func (i InventoryItem) NeedsReorder() bool {
	return i.Quantity <= i.ReorderLevel
}
