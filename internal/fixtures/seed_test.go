package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/dbtest"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{ err error }

func (h plainHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func TestSeedIsIdempotent(t *testing.T) {
	client := dbtest.New(t)
	seeder, err := NewSeeder(client.DB(), plainHasher{}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	counts := map[any]int{
		&models.User{}:          len(Users()),
		&models.MenuItem{}:      len(MenuItems()),
		&models.Order{}:         2,
		&models.OrderItem{}:     4,
		&models.Transaction{}:   2,
		&models.InventoryItem{}: 7,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, client.DB().Model(model).Count(&got).Error)
		assert.Equal(t, int64(want), got, "%T", model)
	}

	var user models.User
	require.NoError(t, client.DB().First(&user, "id = ?", "user-1").Error)
	assert.Equal(t, "hashed:"+DefaultPassword, user.PasswordHash)
	assert.Equal(t, int64(150000), user.WalletBalance)
}

func TestSeedCombinesGroupFailures(t *testing.T) {
	client := dbtest.New(t)
	seeder, err := NewSeeder(client.DB(), plainHasher{err: errors.New("no entropy")}, nil)
	require.NoError(t, err)

	err = seeder.Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")

	var items int64
	require.NoError(t, client.DB().Model(&models.MenuItem{}).Count(&items).Error)
	assert.Equal(t, int64(len(MenuItems())), items)
}

func TestMenuFixturesAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range MenuItems() {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
		assert.True(t, item.Category.IsValid(), item.ID)
		assert.True(t, item.Price > 0, item.ID)
	}
	assert.Len(t, seen, 12)
}
