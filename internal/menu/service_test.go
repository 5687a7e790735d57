package menu

import (
	"context"
	"testing"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/dbtest"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.New(t).DB()), ids.NewSequence(), nil)
	require.NoError(t, err)
	return svc
}

func nasiTimbel() ItemInput {
	return ItemInput{
		Name:        "Nasi Timbel",
		Description: "Nasi dibungkus daun pisang",
		Price:       25000,
		Category:    enums.MenuCategoryLunch,
		Ingredients: []string{"nasi", "ayam goreng", "sambal"},
		PrepTime:    15,
		Tags:        []string{"signature"},
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, ids.NewSequence(), nil)
	assert.Error(t, err)
	_, err = NewService(&Repository{}, nil, nil)
	assert.Error(t, err)
}

func TestAddAssignsItemIDAndDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, nasiTimbel())
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, enums.MenuItemStatusAvailable, item.Status)

	loaded, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"nasi", "ayam goreng", "sambal"}, loaded.Ingredients)
	assert.Equal(t, int64(25000), loaded.Price)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	input := nasiTimbel()
	input.Category = "brunch"
	_, err := svc.Add(context.Background(), input)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	input = nasiTimbel()
	input.Name = "   "
	_, err = svc.Add(context.Background(), input)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestAddAndUpdateRejectNonPositivePrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.Add(ctx, nasiTimbel())
	require.NoError(t, err)

	for _, price := range []int64{0, -500} {
		input := nasiTimbel()
		input.Price = price
		_, err := svc.Add(ctx, input)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "add at %d: %v", price, err)

		_, err = svc.Update(ctx, item.ID, input)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "update at %d: %v", price, err)
	}

	loaded, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), loaded.Price)
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), "item-404")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateReplacesItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.Add(ctx, nasiTimbel())
	require.NoError(t, err)

	input := nasiTimbel()
	input.Name = "Nasi Timbel Komplit"
	input.Price = 30000
	input.Tags = nil
	updated, err := svc.Update(ctx, item.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Nasi Timbel Komplit", updated.Name)
	assert.Equal(t, int64(30000), updated.Price)
	assert.Empty(t, updated.Tags)

	_, err = svc.Update(ctx, "item-404", input)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestSetAvailabilityChangesOnlyStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, err := svc.Add(ctx, nasiTimbel())
	require.NoError(t, err)

	updated, err := svc.SetAvailability(ctx, item.ID, enums.MenuItemStatusUnavailable)
	require.NoError(t, err)
	assert.Equal(t, enums.MenuItemStatusUnavailable, updated.Status)
	assert.Equal(t, item.Name, updated.Name)
	assert.Equal(t, item.Price, updated.Price)

	_, err = svc.GetAvailable(ctx, item.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.SetAvailability(ctx, "item-404", enums.MenuItemStatusAvailable)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	_, err = svc.SetAvailability(ctx, item.ID, "sold-out")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestListFiltersByCategoryAndStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, nasiTimbel())
	require.NoError(t, err)
	drink := ItemInput{Name: "Es Cendol", Price: 12000, Category: enums.MenuCategoryBeverages}
	cendol, err := svc.Add(ctx, drink)
	require.NoError(t, err)
	_, err = svc.SetAvailability(ctx, cendol.ID, enums.MenuItemStatusUnavailable)
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	beverages, err := svc.List(ctx, ListFilter{Category: enums.MenuCategoryBeverages})
	require.NoError(t, err)
	require.Len(t, beverages, 1)
	assert.Equal(t, "Es Cendol", beverages[0].Name)

	available, err := svc.List(ctx, ListFilter{Status: enums.MenuItemStatusAvailable})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Nasi Timbel", available[0].Name)

	_, err = svc.List(ctx, ListFilter{Category: "brunch"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
