package ledger

import (
	"context"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository manages persistence for wallet transactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Transaction) error
	ListByUserID(ctx context.Context, userID string) ([]models.Transaction, error)
	ListByOrderID(ctx context.Context, orderID string) ([]models.Transaction, error)
	CountByOrderID(ctx context.Context, orderID string, kind enums.TransactionType) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUserID returns the newest entries first.
func (r *repository) ListByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	var entries []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByOrderID(ctx context.Context, orderID string) ([]models.Transaction, error) {
	var entries []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) CountByOrderID(ctx context.Context, orderID string, kind enums.TransactionType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("order_id = ? AND type = ?", orderID, kind).
		Count(&count).Error
	return count, err
}
