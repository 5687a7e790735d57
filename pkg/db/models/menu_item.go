package models

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// MenuItem is a dish or drink offered by the warung.
type MenuItem struct {
	ID          string               `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name        string               `gorm:"column:name;type:text;not null" json:"name"`
	Description string               `gorm:"column:description;type:text;not null;default:''" json:"description"`
	Price       int64                `gorm:"column:price;not null" json:"price"`
	Category    enums.MenuCategory   `gorm:"column:category;type:text;not null;index" json:"category"`
	ImageURL    string               `gorm:"column:image_url;type:text" json:"imageUrl"`
	Ingredients []string             `gorm:"column:ingredients;type:text;serializer:json" json:"ingredients"`
	Status      enums.MenuItemStatus `gorm:"column:status;type:text;not null;default:'available'" json:"status"`
	PrepTime    int                  `gorm:"column:prep_time;not null;default:0" json:"prepTime"`
	Calories    int                  `gorm:"column:calories;not null;default:0" json:"calories"`
	Tags        []string             `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	Rating      float64              `gorm:"column:rating;not null;default:0" json:"rating"`
	TotalOrders int                  `gorm:"column:total_orders;not null;default:0" json:"totalOrders"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// IsAvailable reports whether the item can currently be ordered.
func (m MenuItem) IsAvailable() bool {
	return m.Status == enums.MenuItemStatusAvailable
}
