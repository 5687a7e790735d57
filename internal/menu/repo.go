package menu

import (
	"context"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists menu items.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a menu repository to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Category enums.MenuCategory
	Status   enums.MenuItemStatus
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var items []models.MenuItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Replace overwrites every column of an existing item.
func (r *Repository) Replace(ctx context.Context, item *models.MenuItem) error {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", item.ID).
		Select("name", "description", "price", "category", "image_url", "ingredients",
			"status", "prep_time", "calories", "tags", "rating", "total_orders", "updated_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status enums.MenuItemStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementOrders bumps the popularity counters of the given item ids.
func (r *Repository) IncrementOrders(ctx context.Context, counts map[string]int) error {
	for id, qty := range counts {
		if qty <= 0 {
			continue
		}
		if err := r.db.WithContext(ctx).
			Model(&models.MenuItem{}).
			Where("id = ?", id).
			UpdateColumn("total_orders", gorm.Expr("total_orders + ?", qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}
