package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db"
	pkgerrors "github.com/shopfront/shopfront-backend/pkg/errors"
	"github.com/shopfront/shopfront-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, repo
}

func TestServiceListPaginationMath(t *testing.T) {
	svc, repo := newTestService(t)
	seedStorefront(t, repo.db)

	result, err := svc.List(context.Background(), ListInput{
		MinPriceCents: int64Ptr(2000),
		MaxPriceCents: int64Ptr(10000),
		Sort:          SortPriceAsc,
		Page:          pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Pages)
	require.Len(t, result.Items, 2)
	assert.InDelta(t, 24.99, result.Items[0].Price, 0.0001)
	assert.InDelta(t, 29.99, result.Items[1].Price, 0.0001)
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "  ", Price: 10})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateRejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "Gadget", Price: -1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateStoresExactCents(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateItemInput{Name: "Gadget", Price: 19.99})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), stored.PriceCents)
	assert.InDelta(t, 19.99, created.Price, 0.0001)
}

func TestServiceUpdatePartial(t *testing.T) {
	svc, repo := newTestService(t)
	item := mustCreateItem(t, repo.db, "Gadget", 1000, "electronics", testEpoch)

	newPrice := 25.50
	updated, err := svc.Update(context.Background(), item.ID, UpdateItemInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, "Gadget", updated.Name)
	assert.InDelta(t, 25.50, updated.Price, 0.0001)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "electronics", *updated.Category)
}

func TestServiceUpdateMissingItem(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateItemInput{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDelete(t *testing.T) {
	svc, repo := newTestService(t)
	item := mustCreateItem(t, repo.db, "Gadget", 1000, "", testEpoch)

	require.NoError(t, svc.Delete(context.Background(), item.ID))

	err := svc.Delete(context.Background(), item.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSeedDefaultsOnlyWhenEmpty(t *testing.T) {
	_, repo := newTestService(t)

	inserted, err := SeedDefaults(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, inserted)

	again, err := SeedDefaults(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Zero(t, again)
}
