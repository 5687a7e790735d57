package models

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// Transaction is an append-only wallet ledger entry.
type Transaction struct {
	ID          string                  `gorm:"column:id;type:text;primaryKey" json:"id"`
	UserID      string                  `gorm:"column:user_id;type:text;not null;index" json:"userId"`
	OrderID     *string                 `gorm:"column:order_id;type:text;index" json:"orderId,omitempty"`
	Amount      int64                   `gorm:"column:amount;not null" json:"amount"`
	Type        enums.TransactionType   `gorm:"column:type;type:text;not null" json:"type"`
	Status      enums.TransactionStatus `gorm:"column:status;type:text;not null" json:"status"`
	Description string                  `gorm:"column:description;type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time               `gorm:"column:created_at;not null" json:"createdAt"`
}
