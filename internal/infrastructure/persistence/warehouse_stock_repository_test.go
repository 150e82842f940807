package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, repo *GormWarehouseStockRepository, tenantID, warehouseID, productID uuid.UUID, variantID *uuid.UUID, qty int64) *warehouse.StockEntry {
	t.Helper()
	entry, err := warehouse.NewStockEntry(tenantID, warehouseID, productID, variantID, uuid.New())
	require.NoError(t, err)
	stored, err := repo.AddOrCreate(context.Background(), entry, qty)
	require.NoError(t, err)
	return stored
}

func TestGormWarehouseStockRepository_AddOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWarehouseStockRepository(newTestDB(t))
	tenantID, warehouseID, productID := uuid.New(), uuid.New(), uuid.New()

	t.Run("first receipt creates the row", func(t *testing.T) {
		stored := receive(t, repo, tenantID, warehouseID, productID, nil, 10)
		assert.Equal(t, int64(10), stored.Quantity)
		assert.Equal(t, uuid.Nil, stored.VariantID)
		assert.True(t, stored.IsActive)
	})

	t.Run("second receipt adds to the same row", func(t *testing.T) {
		stored := receive(t, repo, tenantID, warehouseID, productID, nil, 5)
		assert.Equal(t, int64(15), stored.Quantity)
		assert.Equal(t, 2, stored.Version)

		_, total, err := repo.FindByWarehouse(ctx, tenantID, warehouseID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("a variant is a separate row", func(t *testing.T) {
		variantID := uuid.New()
		stored := receive(t, repo, tenantID, warehouseID, productID, &variantID, 3)
		assert.Equal(t, int64(3), stored.Quantity)
		assert.Equal(t, variantID, stored.VariantID)
	})

	t.Run("receipt reactivates a deactivated row", func(t *testing.T) {
		otherProduct := uuid.New()
		stored := receive(t, repo, tenantID, warehouseID, otherProduct, nil, 2)
		stored.Deactivate(uuid.New())
		require.NoError(t, repo.Save(ctx, stored))

		_, err := repo.FindByKey(ctx, tenantID, warehouseID, otherProduct, uuid.Nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		again := receive(t, repo, tenantID, warehouseID, otherProduct, nil, 4)
		assert.True(t, again.IsActive)
		assert.Equal(t, int64(6), again.Quantity)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		entry, err := warehouse.NewStockEntry(tenantID, warehouseID, uuid.New(), nil, uuid.Nil)
		require.NoError(t, err)
		_, err = repo.AddOrCreate(ctx, entry, 0)
		assert.ErrorIs(t, err, ledger.ErrInvalidQuantity)
	})
}

func TestGormWarehouseStockRepository_Decrement(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWarehouseStockRepository(newTestDB(t))
	tenantID := uuid.New()
	stored := receive(t, repo, tenantID, uuid.New(), uuid.New(), nil, 10)

	require.NoError(t, repo.Decrement(ctx, tenantID, stored.ID, 4, uuid.New()))
	got, err := repo.FindByIDForTenant(ctx, tenantID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Quantity)

	err = repo.Decrement(ctx, tenantID, stored.ID, 7, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrInsufficientQuantity)
	assert.Contains(t, err.Error(), "available 6")

	require.NoError(t, repo.Decrement(ctx, tenantID, stored.ID, 6, uuid.New()))
	got, err = repo.FindByIDForTenant(ctx, tenantID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)

	err = repo.Decrement(ctx, tenantID, uuid.New(), 1, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Decrement(ctx, uuid.New(), stored.ID, 1, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound, "another tenant cannot touch the row")
}

func TestGormWarehouseStockRepository_DecrementSQL(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormWarehouseStockRepository(db)

	tenantID, id, userID := uuid.New(), uuid.New(), uuid.New()

	t.Run("guarded update", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "warehouse_stock_entries" SET "quantity"=quantity - \$1,"updated_at"=\$2,"updated_by"=\$3,"version"=version \+ 1 WHERE tenant_id = \$4 AND id = \$5 AND quantity >= \$6`).
			WithArgs(int64(5), sqlmock.AnyArg(), userID, tenantID, id, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Decrement(context.Background(), tenantID, id, 5, userID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost race reports what is left", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "warehouse_stock_entries" SET "quantity"=quantity - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT "quantity" FROM "warehouse_stock_entries" WHERE tenant_id = \$1 AND id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(int64(2)))

		err := repo.Decrement(context.Background(), tenantID, id, 5, userID)
		assert.ErrorIs(t, err, ledger.ErrInsufficientQuantity)
		assert.Contains(t, err.Error(), "available 2, requested 5")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseStockRepository_FindByWarehouse(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWarehouseStockRepository(newTestDB(t))
	tenantID, warehouseID := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		receive(t, repo, tenantID, warehouseID, uuid.New(), nil, int64(i+1))
	}
	receive(t, repo, tenantID, uuid.New(), uuid.New(), nil, 9)
	receive(t, repo, uuid.New(), warehouseID, uuid.New(), nil, 9)

	entries, total, err := repo.FindByWarehouse(ctx, tenantID, warehouseID, shared.Filter{Page: 1, PageSize: 2, OrderBy: "quantity", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Quantity)
	assert.Equal(t, int64(2), entries[1].Quantity)
}
