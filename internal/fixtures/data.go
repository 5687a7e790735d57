package fixtures

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// DefaultPassword is the login password of every seeded account.
const DefaultPassword = "password123"

// SeedUser is a fixture account before its password is hashed.
type SeedUser struct {
	ID            string
	Name          string
	Email         string
	Role          enums.UserRole
	WalletBalance int64
}

func Users() []SeedUser {
	return []SeedUser{
		{ID: "user-1", Name: "Budi Santoso", Email: "budi@example.com", Role: enums.UserRoleCustomer, WalletBalance: 150000},
		{ID: "user-2", Name: "Siti Nurhaliza", Email: "siti@example.com", Role: enums.UserRoleCustomer, WalletBalance: 75000},
		{ID: "user-3", Name: "Dadang Suherman", Email: "dadang@warungsunda.id", Role: enums.UserRoleStaff},
		{ID: "user-4", Name: "Admin Warung", Email: "admin@warungsunda.id", Role: enums.UserRoleAdmin},
	}
}

func MenuItems() []models.MenuItem {
	return []models.MenuItem{
		menuItem("item-1", "Nasi Timbel", "Nasi putih yang dibungkus daun pisang disajikan dengan ayam goreng, ikan bakar, dan lauk tradisional Sunda",
			25000, enums.MenuCategoryBreakfast, "nasi-timbel.jpg", []string{"Nasi putih", "Daun pisang", "Ayam goreng", "Sambal", "Lalapan"},
			15, 450, []string{"popular", "tradisional", "khas sunda"}, 4.8, 1200),
		menuItem("item-2", "Gado-Gado Sunda", "Salad sayuran segar dengan bumbu kacang khas Sunda, tahu, tempe, dan kerupuk",
			18000, enums.MenuCategoryBreakfast, "gado-gado.jpg", []string{"Sayuran segar", "Bumbu kacang", "Tahu", "Tempe", "Kerupuk"},
			10, 320, []string{"sehat", "vegetarian", "segar"}, 4.5, 980),
		menuItem("item-3", "Soto Bandung", "Sup daging sapi jernih khas Bandung dengan lobak, tauge, dan bawang goreng",
			22000, enums.MenuCategoryBreakfast, "soto-bandung.jpg", []string{"Daging sapi", "Lobak", "Tauge", "Bawang goreng", "Kerupuk"},
			20, 280, []string{"hangat", "berkuah", "tradisional"}, 4.3, 650),
		menuItem("item-4", "Nasi Liwet Sunda", "Nasi gurih yang dimasak dengan santan dan rempah, disajikan dengan ayam, sayuran, dan sambal",
			30000, enums.MenuCategoryLunch, "nasi-liwet.jpg", []string{"Beras", "Santan", "Ayam", "Sayuran", "Sambal", "Kerupuk"},
			25, 520, []string{"lengkap", "gurih", "khas sunda"}, 4.7, 850),
		menuItem("item-5", "Ayam Bakar Sunda", "Ayam bakar bumbu kecap manis khas Sunda dengan sambal dan lalapan segar",
			28000, enums.MenuCategoryLunch, "ayam-bakar.jpg", []string{"Ayam", "Kecap manis", "Bumbu bakar", "Sambal", "Lalapan"},
			30, 380, []string{"bakar", "pedas", "popular"}, 4.6, 720),
		menuItem("item-6", "Empal Gepuk", "Daging sapi goreng manis khas Sunda yang empuk dengan bumbu rempah tradisional",
			35000, enums.MenuCategoryLunch, "empal-gepuk.jpg", []string{"Daging sapi", "Gula merah", "Rempah tradisional", "Santan"},
			25, 420, []string{"manis", "empuk", "spesial"}, 4.4, 580),
		menuItem("item-7", "Pepes Ikan", "Ikan segar dibumbui rempah Sunda dan dikukus dalam daun pisang",
			26000, enums.MenuCategoryDinner, "pepes-ikan.jpg", []string{"Ikan segar", "Bumbu pepes", "Daun pisang", "Cabai", "Kemangi"},
			25, 290, []string{"sehat", "dikukus", "aromatik"}, 4.7, 490),
		menuItem("item-8", "Sate Maranggi", "Sate daging sapi khas Purwakarta dengan bumbu kecap dan sambal khas",
			32000, enums.MenuCategoryDinner, "sate-maranggi.jpg", []string{"Daging sapi", "Bumbu kecap", "Tusuk sate", "Sambal", "Lontong"},
			40, 450, []string{"spesial", "bakar", "popular"}, 4.9, 1100),
		menuItem("item-9", "Karedok", "Salad sayuran mentah khas Sunda dengan bumbu kacang pedas dan segar",
			15000, enums.MenuCategorySnacks, "karedok.jpg", []string{"Sayuran mentah", "Bumbu kacang", "Cabai rawit", "Kerupuk"},
			15, 180, []string{"segar", "pedas", "sehat"}, 4.5, 820),
		// desserts are listed with snacks.
		menuItem("item-10", "Serabi", "Kue tradisional Sunda yang lembut dengan topping gula merah dan kelapa parut",
			12000, enums.MenuCategorySnacks, "serabi.jpg", []string{"Tepung beras", "Santan", "Gula merah", "Kelapa parut"},
			5, 220, []string{"manis", "tradisional", "lembut"}, 4.6, 750),
		menuItem("item-11", "Teh Poci", "Teh tradisional Sunda yang diseduh dalam poci tanah liat dengan gula batu",
			8000, enums.MenuCategoryBeverages, "teh-poci.jpg", []string{"Teh hitam", "Gula batu", "Air panas"},
			8, 45, []string{"hangat", "tradisional", "popular"}, 4.8, 1500),
		menuItem("item-12", "Es Cendol", "Minuman segar khas Indonesia dengan cendol hijau, santan, dan gula merah",
			10000, enums.MenuCategoryBeverages, "es-cendol.jpg", []string{"Cendol hijau", "Santan", "Gula merah", "Es batu"},
			2, 150, []string{"segar", "manis", "dingin"}, 4.7, 920),
	}
}

// Orders returns sample history relative to now.
func Orders(now time.Time) []models.Order {
	placed := now.Add(-26 * time.Hour).UTC()
	completed := placed.Add(20 * time.Minute)
	recent := now.Add(-10 * time.Minute).UTC()
	return []models.Order{
		{
			ID:           "order-1001",
			CustomerID:   "user-1",
			CustomerName: "Budi Santoso",
			Items: []models.OrderItem{
				{ItemID: "item-1", Name: "Nasi Timbel", Price: 25000, Quantity: 2, Total: 50000},
				{ItemID: "item-11", Name: "Teh Poci", Price: 8000, Quantity: 2, Total: 16000},
			},
			TotalAmount:        66000,
			Status:             enums.OrderStatusCompleted,
			PaymentMethod:      enums.PaymentMethodWallet,
			PaymentStatus:      enums.PaymentStatusCompleted,
			EstimatedReadyTime: placed.Add(15 * time.Minute),
			CompletedAt:        &completed,
			CreatedAt:          placed,
		},
		{
			ID:           "order-1002",
			CustomerID:   "user-2",
			CustomerName: "Siti Nurhaliza",
			Items: []models.OrderItem{
				{ItemID: "item-8", Name: "Sate Maranggi", Price: 32000, Quantity: 1, Total: 32000},
				{ItemID: "item-12", Name: "Es Cendol", Price: 10000, Quantity: 1, Total: 10000, SpecialInstructions: strPtr("Tanpa es batu")},
			},
			TotalAmount:        42000,
			Status:             enums.OrderStatusPreparing,
			PaymentMethod:      enums.PaymentMethodQRIS,
			PaymentStatus:      enums.PaymentStatusCompleted,
			PaymentReference:   strPtr("qris_seed-1002"),
			EstimatedReadyTime: recent.Add(15 * time.Minute),
			CreatedAt:          recent,
		},
	}
}

func Transactions(now time.Time) []models.Transaction {
	return []models.Transaction{
		{
			ID:          "txn-1001",
			UserID:      "user-1",
			Amount:      216000,
			Type:        enums.TransactionTypeDeposit,
			Status:      enums.TransactionStatusCompleted,
			Description: "Wallet top-up",
			CreatedAt:   now.Add(-48 * time.Hour).UTC(),
		},
		{
			ID:          "txn-1002",
			UserID:      "user-1",
			OrderID:     strPtr("order-1001"),
			Amount:      66000,
			Type:        enums.TransactionTypePayment,
			Status:      enums.TransactionStatusCompleted,
			Description: "Pembayaran untuk pesanan #order-1001",
			CreatedAt:   now.Add(-26 * time.Hour).UTC(),
		},
	}
}

func Inventory(now time.Time) []models.InventoryItem {
	restocked := now.Add(-72 * time.Hour).UTC()
	return []models.InventoryItem{
		{ID: "inv-1", Name: "Beras", Quantity: 50, Unit: "kg", ReorderLevel: 10, LastRestocked: restocked},
		{ID: "inv-2", Name: "Ayam", Quantity: 8, Unit: "kg", ReorderLevel: 10, LastRestocked: restocked},
		{ID: "inv-3", Name: "Daging sapi", Quantity: 15, Unit: "kg", ReorderLevel: 5, LastRestocked: restocked},
		{ID: "inv-4", Name: "Daun pisang", Quantity: 200, Unit: "lembar", ReorderLevel: 50, LastRestocked: restocked},
		{ID: "inv-5", Name: "Santan", Quantity: 12, Unit: "liter", ReorderLevel: 5, LastRestocked: restocked},
		{ID: "inv-6", Name: "Gula merah", Quantity: 3, Unit: "kg", ReorderLevel: 4, LastRestocked: restocked},
		{ID: "inv-7", Name: "Teh hitam", Quantity: 2.5, Unit: "kg", ReorderLevel: 1, LastRestocked: restocked},
	}
}

func menuItem(id, name, description string, price int64, category enums.MenuCategory, image string, ingredients []string, prep, calories int, tags []string, rating float64, totalOrders int) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		ImageURL:    "/assets/" + image,
		Ingredients: ingredients,
		Status:      enums.MenuItemStatusAvailable,
		PrepTime:    prep,
		Calories:    calories,
		Tags:        tags,
		Rating:      rating,
		TotalOrders: totalOrders,
	}
}

func strPtr(value string) *string {
	return &value
}
