package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned by Debit when the wallet cannot cover the amount.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Balance returns the current wallet balance of id.
func (r *Repository) Balance(ctx context.Context, id string) (int64, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}

// Debit subtracts amount from the wallet only when the balance covers it.
// The check and the write are one statement so concurrent debits cannot overdraw.
func (r *Repository) Debit(ctx context.Context, id string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", id, amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}

// Credit adds amount to the wallet.
func (r *Repository) Credit(ctx context.Context, id string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
