package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn func(ctx context.Context, entry *models.Transaction) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, entry *models.Transaction) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeRepository) ListByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeRepository) ListByOrderID(ctx context.Context, orderID string) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeRepository) CountByOrderID(ctx context.Context, orderID string, kind enums.TransactionType) (int64, error) {
	return 0, nil
}

var fixedNow = time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, ids.NewSequence(), func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_Record(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	var created *models.Transaction
	repo.createFn = func(ctx context.Context, entry *models.Transaction) error {
		created = entry
		return nil
	}

	orderID := "order-1"
	got, err := svc.Record(context.Background(), nil, RecordInput{
		UserID:      "user-1",
		OrderID:     &orderID,
		Amount:      50000,
		Type:        enums.TransactionTypePayment,
		Description: "Pembayaran untuk pesanan #order-1",
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if created == nil || got != created {
		t.Fatal("service should return the created entry")
	}
	if created.ID != "txn-1" || created.Status != enums.TransactionStatusCompleted {
		t.Fatalf("unexpected defaults: %+v", created)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected clock time, got %v", created.CreatedAt)
	}
}

func TestService_RecordValidation(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	tests := []struct {
		name  string
		input RecordInput
	}{
		{name: "missing user", input: RecordInput{Amount: 10, Type: enums.TransactionTypeDeposit}},
		{name: "zero amount", input: RecordInput{UserID: "user-1", Type: enums.TransactionTypeDeposit}},
		{name: "negative amount", input: RecordInput{UserID: "user-1", Amount: -5, Type: enums.TransactionTypeDeposit}},
		{name: "invalid type", input: RecordInput{UserID: "user-1", Amount: 10, Type: "refund"}},
		{name: "invalid status", input: RecordInput{UserID: "user-1", Amount: 10, Type: enums.TransactionTypeDeposit, Status: "settled"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(context.Background(), nil, tc.input); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestService_RecordRepoError(t *testing.T) {
	expectedErr := errors.New("boom")
	svc := newTestService(t, &fakeRepository{createFn: func(ctx context.Context, entry *models.Transaction) error {
		return expectedErr
	}})

	if _, err := svc.Record(context.Background(), nil, RecordInput{
		UserID: "user-1",
		Amount: 100,
		Type:   enums.TransactionTypeDeposit,
	}); !errors.Is(err, expectedErr) {
		t.Fatalf("expected repo error to bubble up, got %v", err)
	}
}
