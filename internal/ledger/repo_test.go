package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/dbtest"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

func TestRepository_ListOrdering(t *testing.T) {
	client := dbtest.New(t)
	ctx := context.Background()
	if err := client.DB().Create(&models.User{ID: "user-1", Name: "Asep", Email: "asep@warung.test", PasswordHash: "x", Role: enums.UserRoleCustomer}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	repo := NewRepository(client.DB())
	orderID := "order-7"
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	entries := []models.Transaction{
		{ID: "txn-1", UserID: "user-1", Amount: 100000, Type: enums.TransactionTypeDeposit, Status: enums.TransactionStatusCompleted, CreatedAt: base},
		{ID: "txn-2", UserID: "user-1", OrderID: &orderID, Amount: 30000, Type: enums.TransactionTypePayment, Status: enums.TransactionStatusCompleted, CreatedAt: base.Add(time.Minute)},
		{ID: "txn-3", UserID: "user-1", OrderID: &orderID, Amount: 30000, Type: enums.TransactionTypeDeposit, Status: enums.TransactionStatusCompleted, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range entries {
		if err := repo.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	byUser, err := repo.ListByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(byUser) != 3 || byUser[0].ID != "txn-3" {
		t.Fatalf("expected newest first, got %+v", byUser)
	}

	byOrder, err := repo.ListByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("list by order: %v", err)
	}
	if len(byOrder) != 2 || byOrder[0].ID != "txn-2" {
		t.Fatalf("expected oldest first for order, got %+v", byOrder)
	}

	refunds, err := repo.CountByOrderID(ctx, orderID, enums.TransactionTypeDeposit)
	if err != nil || refunds != 1 {
		t.Fatalf("expected one refund, got %d (%v)", refunds, err)
	}
}
