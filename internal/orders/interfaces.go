package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their item snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	// TransitionStatus moves id from `from` to `to` only if it is still in `from`.
	TransitionStatus(ctx context.Context, id string, from, to enums.OrderStatus, completedAt *time.Time) (bool, error)
	// MarkCancelled cancels id only if it is not yet terminal.
	MarkCancelled(ctx context.Context, id string, paymentStatus enums.PaymentStatus) (bool, error)
}

// ListFilter narrows order listings. Zero values match everything.
type ListFilter struct {
	CustomerID string
	Status     enums.OrderStatus
}
