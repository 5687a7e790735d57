package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"gorm.io/gorm"
)

// Service records and lists wallet transactions.
type Service interface {
	// Record appends an entry; a non-nil tx joins the caller's transaction.
	Record(ctx context.Context, tx *gorm.DB, input RecordInput) (*models.Transaction, error)
	ListForUser(ctx context.Context, userID string) ([]models.Transaction, error)
	ListForOrder(ctx context.Context, orderID string) ([]models.Transaction, error)
}

type service struct {
	repo  Repository
	ids   ids.Generator
	clock func() time.Time
}

// RecordInput captures the immutable data a ledger entry requires.
type RecordInput struct {
	UserID      string
	OrderID     *string
	Amount      int64
	Type        enums.TransactionType
	Status      enums.TransactionStatus
	Description string
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository, gen ids.Generator, clock func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if gen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, ids: gen, clock: clock}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, input RecordInput) (*models.Transaction, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid transaction type %q", input.Type)
	}
	if input.Status == "" {
		input.Status = enums.TransactionStatusCompleted
	}
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status %q", input.Status)
	}

	entry := &models.Transaction{
		ID:          s.ids.New(ids.PrefixTransaction),
		UserID:      input.UserID,
		OrderID:     input.OrderID,
		Amount:      input.Amount,
		Type:        input.Type,
		Status:      input.Status,
		Description: input.Description,
		CreatedAt:   s.clock().UTC(),
	}

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	return s.repo.ListByUserID(ctx, userID)
}

func (s *service) ListForOrder(ctx context.Context, orderID string) ([]models.Transaction, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("order id is required")
	}
	return s.repo.ListByOrderID(ctx, orderID)
}
