package models

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// User is a registered customer or staff member.
type User struct {
	ID            string         `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name          string         `gorm:"column:name;type:text;not null" json:"name"`
	Email         string         `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash  string         `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role          enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'" json:"role"`
	WalletBalance int64          `gorm:"column:wallet_balance;not null;default:0" json:"walletBalance"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
