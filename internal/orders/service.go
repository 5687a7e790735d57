package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/warungsunda-backend/internal/wallet"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// refunder credits a wallet inside the caller's transaction.
type refunder interface {
	Credit(ctx context.Context, tx *gorm.DB, input wallet.MovementInput) (*models.Transaction, error)
}

// Service exposes order reads and lifecycle transitions.
type Service interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	// List returns the actor's own orders, or every order for staff.
	List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, actor auth.Actor, id string, status enums.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, actor auth.Actor, id string) (*models.Order, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	wallet  refunder
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
	clock   func() time.Time
}

// NewService wires the orders service. metrics may be nil.
func NewService(repo Repository, tx txRunner, wallet refunder, m *metrics.CheckoutMetrics, logg *logger.Logger, clock func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet refunder required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, tx: tx, wallet: wallet, metrics: m, logg: logg, clock: clock}, nil
}

// RefundDescription is the ledger text for a cancelled wallet order.
func RefundDescription(orderID string) string {
	return fmt.Sprintf("Refund for cancelled order #%s", ids.Short(orderID))
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return order, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]models.Order, error) {
	if actor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": filter.Status})
	}
	if !actor.IsStaff() {
		filter.CustomerID = actor.UserID
	}
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor auth.Actor, id string, status enums.OrderStatus) (*models.Order, error) {
	if actor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status})
	}
	if status == enums.OrderStatusCancelled {
		return s.Cancel(ctx, actor, id)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, transitionConflict(order.Status, status)
	}

	var completedAt *time.Time
	if status == enums.OrderStatusCompleted {
		now := s.clock().UTC()
		completedAt = &now
	}
	moved, err := s.repo.TransitionStatus(ctx, order.ID, order.Status, status, completedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if !moved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently").
			WithDetails(map[string]any{"orderId": order.ID})
	}

	s.metrics.IncStatusTransition(string(status))
	logCtx := s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID), map[string]any{
		"from": order.Status,
		"to":   status,
	})
	s.logg.Info(logCtx, "order.status_updated")
	return s.Get(ctx, order.ID)
}

func (s *service) Cancel(ctx context.Context, actor auth.Actor, id string) (*models.Order, error) {
	if actor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var refunded int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err, id)
		}
		if !actor.CanAccessCustomer(order.CustomerID) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
		}
		if order.Status.IsTerminal() {
			return cancelConflict(order.Status)
		}

		refund := order.PaymentMethod == enums.PaymentMethodWallet &&
			order.PaymentStatus == enums.PaymentStatusCompleted &&
			!order.IsAnonymous()
		paymentStatus := order.PaymentStatus
		if refund {
			paymentStatus = enums.PaymentStatusRefunded
		}

		cancelled, err := repo.MarkCancelled(ctx, order.ID, paymentStatus)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
		}
		if !cancelled {
			return cancelConflict(order.Status)
		}
		if !refund {
			return nil
		}

		orderID := order.ID
		if _, err := s.wallet.Credit(ctx, tx, wallet.MovementInput{
			UserID:      order.CustomerID,
			Amount:      order.TotalAmount,
			OrderID:     &orderID,
			Description: RefundDescription(order.ID),
		}); err != nil {
			return err
		}
		refunded = order.TotalAmount
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncStatusTransition(string(enums.OrderStatusCancelled))
	if refunded > 0 {
		s.metrics.AddWalletMovement(string(enums.TransactionTypeDeposit), refunded)
	}
	logCtx := s.logg.WithFields(s.logg.WithOrderID(ctx, id), map[string]any{
		"refunded":   refunded,
		"actor_role": actor.Role,
	})
	s.logg.Info(logCtx, "order.cancelled")
	return s.Get(ctx, id)
}

func transitionConflict(from, to enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order cannot move from %s to %s", from, to)).
		WithDetails(map[string]any{"from": from, "to": to})
}

func cancelConflict(status enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order cannot be cancelled in %s state", status)).
		WithDetails(map[string]any{"status": status})
}

func mapLookupError(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]any{"orderId": id})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
}
