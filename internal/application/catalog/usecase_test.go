package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/infrastructure/memory"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

func newCatalog() *catalog.CatalogUseCase {
	store := memory.NewStore()
	return catalog.NewCatalogUseCase(store.Components(), store, logger.Nop())
}

func component() dto.ComponentRequest {
	price := decimal.RequireFromString("12.345")
	return dto.ComponentRequest{
		Key: "GPS", NbPhase: 1, Angle: 90, Resmini: 170, Info: "Support GPS", AList: "150,200",
		Thickness: []int{5, 10}, Width: []int{50, 63}, Poles: []int{3}, Shape: []string{"Flat"},
		UnitPrice: &price,
	}
}

func TestCreateAndGet(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	res, err := uc.Create(ctx, component())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Variants)

	got, err := uc.Get(ctx, dto.ComponentKeyRequest{ComponentID: "GPS", NbPhase: 1})
	require.NoError(t, err)
	require.Len(t, got.Components, 1)
	info := got.Components[0]
	assert.Equal(t, 150, info.Amini)
	assert.True(t, decimal.RequireFromString("12.35").Equal(info.UnitPrice))
	assert.Nil(t, info.L)
	assert.Equal(t, dto.VariantSummaryDTO{
		IsComplete: true, Thickness: []int{5, 10}, Width: []int{50, 63}, Poles: []int{3}, Shape: []string{"Flat"},
	}, got.ComponentsList)

	_, err = uc.Create(ctx, component())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_DefaultAmini(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()
	in := component()
	in.AList = ""
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	got, err := uc.Get(ctx, dto.ComponentKeyRequest{ComponentID: "GPS", NbPhase: 1})
	require.NoError(t, err)
	assert.Equal(t, 60, got.Components[0].Amini)
}

func TestGet_NotFound(t *testing.T) {
	uc := newCatalog()
	_, err := uc.Get(context.Background(), dto.ComponentKeyRequest{ComponentID: "NOPE", NbPhase: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Summary(context.Background(), dto.ComponentKeyRequest{ComponentID: "NOPE", NbPhase: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_KeepsPriceAndReplacesVariants(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()
	_, err := uc.Create(ctx, component())
	require.NoError(t, err)

	in := component()
	in.UnitPrice = nil
	in.Info = "Updated"
	in.Thickness = []int{5}
	res, err := uc.Update(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Variants)

	got, err := uc.Get(ctx, dto.ComponentKeyRequest{ComponentID: "GPS", NbPhase: 1})
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Components[0].Info)
	assert.Equal(t, 150, got.Components[0].Amini)
	assert.True(t, decimal.RequireFromString("12.35").Equal(got.Components[0].UnitPrice))
	assert.Equal(t, []int{5}, got.ComponentsList.Thickness)

	price, info, err := uc.UnitPrice(ctx, "GPS", 1)
	require.NoError(t, err)
	assert.Equal(t, "12.35", price.StringFixed(2))
	assert.Equal(t, "Updated", info)

	missing := component()
	missing.Key = "NOPE"
	_, err = uc.Update(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()
	_, err := uc.Create(ctx, component())
	require.NoError(t, err)

	key := dto.ComponentKeyRequest{ComponentID: "GPS", NbPhase: 1}
	require.NoError(t, uc.Delete(ctx, key))
	assert.ErrorIs(t, uc.Delete(ctx, key), domain.ErrNotFound)

	price, _, err := uc.UnitPrice(ctx, "GPS", 1)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}
