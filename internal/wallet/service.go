package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/warungsunda-backend/internal/ledger"
	"github.com/angelmondragon/warungsunda-backend/internal/users"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"gorm.io/gorm"
)

const (
	DepositDescription = "Wallet top-up"
	PaymentDescription = "Wallet payment"
)

// Service owns wallet balances and their ledger entries.
type Service interface {
	Balance(ctx context.Context, userID string) (int64, error)
	// AddToWallet credits amount and appends a deposit entry.
	AddToWallet(ctx context.Context, userID string, amount int64) (*Movement, error)
	// PayWithWallet reports false, without error, when there is no user or the balance is short.
	PayWithWallet(ctx context.Context, userID string, amount int64, description string) (bool, error)
	// Debit and Credit join tx when it is non-nil so callers can pair them with other writes.
	// They do not record metrics; callers do that once tx commits.
	Debit(ctx context.Context, tx *gorm.DB, input MovementInput) (*models.Transaction, error)
	Credit(ctx context.Context, tx *gorm.DB, input MovementInput) (*models.Transaction, error)
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

// MovementInput describes one balance change and its ledger entry.
type MovementInput struct {
	UserID      string
	Amount      int64
	OrderID     *string
	Description string
}

// Movement is the outcome of a committed wallet change.
type Movement struct {
	Balance     int64               `json:"balance"`
	Transaction *models.Transaction `json:"transaction"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	users   *users.Repository
	ledger  ledger.Service
	tx      txRunner
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewService wires the wallet service. metrics may be nil.
func NewService(userRepo *users.Repository, ledgerSvc ledger.Service, tx txRunner, m *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{users: userRepo, ledger: ledgerSvc, tx: tx, metrics: m, logg: logg}, nil
}

func (s *service) Balance(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	balance, err := s.users.Balance(ctx, userID)
	if err != nil {
		return 0, mapUserError(err, userID)
	}
	return balance, nil
}

func (s *service) AddToWallet(ctx context.Context, userID string, amount int64) (*Movement, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
			WithDetails(map[string]any{"amount": amount})
	}

	var movement Movement
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		entry, err := s.Credit(ctx, tx, MovementInput{UserID: userID, Amount: amount, Description: DepositDescription})
		if err != nil {
			return err
		}
		balance, err := s.users.WithTx(tx).Balance(ctx, userID)
		if err != nil {
			return mapUserError(err, userID)
		}
		movement = Movement{Balance: balance, Transaction: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AddWalletMovement(string(enums.TransactionTypeDeposit), amount)
	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, userID), map[string]any{"amount": amount, "balance": movement.Balance})
	s.logg.Info(ctx, "wallet.credited")
	return &movement, nil
}

func (s *service) PayWithWallet(ctx context.Context, userID string, amount int64, description string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	if amount <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
			WithDetails(map[string]any{"amount": amount})
	}
	if strings.TrimSpace(description) == "" {
		description = PaymentDescription
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.Debit(ctx, tx, MovementInput{UserID: userID, Amount: amount, Description: description})
		return err
	})
	switch {
	case err == nil:
	case pkgerrors.HasCode(err, pkgerrors.CodeInsufficient), pkgerrors.HasCode(err, pkgerrors.CodeNotFound):
		return false, nil
	default:
		return false, err
	}

	s.metrics.AddWalletMovement(string(enums.TransactionTypePayment), amount)
	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, userID), map[string]any{"amount": amount})
	s.logg.Info(ctx, "wallet.debited")
	return true, nil
}

func (s *service) Debit(ctx context.Context, tx *gorm.DB, input MovementInput) (*models.Transaction, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	if err := s.users.WithTx(tx).Debit(ctx, input.UserID, input.Amount); err != nil {
		if errors.Is(err, users.ErrInsufficientBalance) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInsufficient, err, "insufficient wallet balance").
				WithDetails(map[string]any{"required": input.Amount})
		}
		return nil, mapUserError(err, input.UserID)
	}
	return s.record(ctx, tx, input, enums.TransactionTypePayment)
}

func (s *service) Credit(ctx context.Context, tx *gorm.DB, input MovementInput) (*models.Transaction, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	if err := s.users.WithTx(tx).Credit(ctx, input.UserID, input.Amount); err != nil {
		return nil, mapUserError(err, input.UserID)
	}
	return s.record(ctx, tx, input, enums.TransactionTypeDeposit)
}

func (s *service) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	entries, err := s.ledger.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	return entries, nil
}

func (s *service) record(ctx context.Context, tx *gorm.DB, input MovementInput, kind enums.TransactionType) (*models.Transaction, error) {
	entry, err := s.ledger.Record(ctx, tx, ledger.RecordInput{
		UserID:      input.UserID,
		OrderID:     input.OrderID,
		Amount:      input.Amount,
		Type:        kind,
		Status:      enums.TransactionStatusCompleted,
		Description: input.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record wallet transaction")
	}
	return entry, nil
}

func validateMovement(input MovementInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if input.Amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
			WithDetails(map[string]any{"amount": input.Amount})
	}
	return nil
}

func mapUserError(err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found").
			WithDetails(map[string]any{"userId": userID})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wallet update")
}
