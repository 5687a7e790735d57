package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type passwordHasher interface {
	Hash(password string) (string, error)
}

// Seeder loads the fixture data into an empty or partially seeded database.
type Seeder struct {
	db     *gorm.DB
	hasher passwordHasher
	logg   *logger.Logger
	clock  func() time.Time
}

func NewSeeder(db *gorm.DB, hasher passwordHasher, logg *logger.Logger) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Seeder{db: db, hasher: hasher, logg: logg, clock: time.Now}, nil
}

// Seed inserts every fixture group. Rows that already exist are left alone,
// so seeding twice is harmless. Failures in one group do not stop the others.
func (s *Seeder) Seed(ctx context.Context) error {
	now := s.clock()

	var errs error
	errs = multierr.Append(errs, s.seedUsers(ctx))
	errs = multierr.Append(errs, s.insert(ctx, "menu_items", MenuItems()))
	errs = multierr.Append(errs, s.seedOrders(ctx, Orders(now)))
	errs = multierr.Append(errs, s.insert(ctx, "transactions", Transactions(now)))
	errs = multierr.Append(errs, s.insert(ctx, "inventory_items", Inventory(now)))

	if errs != nil {
		s.logg.Error(ctx, "fixtures.seed_failed", errs)
		return errs
	}
	s.logg.Info(ctx, "fixtures.seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash fixture password: %w", err)
	}
	seeds := Users()
	rows := make([]models.User, 0, len(seeds))
	for _, u := range seeds {
		rows = append(rows, models.User{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			PasswordHash:  hash,
			Role:          u.Role,
			WalletBalance: u.WalletBalance,
		})
	}
	return s.insert(ctx, "users", rows)
}

// seedOrders inserts each order with its items only when the order is new.
func (s *Seeder) seedOrders(ctx context.Context, orders []models.Order) error {
	var errs error
	for i := range orders {
		order := orders[i]
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
			for j := range order.Items {
				order.Items[j].OrderID = order.ID
				order.Items[j].Position = j
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: %w", order.ID, err))
		}
	}
	return errs
}

func (s *Seeder) insert(ctx context.Context, table string, rows any) error {
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error; err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
