package inventory

import (
	"context"
	"fmt"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository reads kitchen stock levels.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, lowStockOnly bool) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if lowStockOnly {
		query = query.Where("quantity <= reorder_level")
	}
	var items []models.InventoryItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Service exposes inventory reads for staff.
type Service interface {
	List(ctx context.Context, lowStockOnly bool) ([]models.InventoryItem, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, lowStockOnly bool) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx, lowStockOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	return items, nil
}
