package persistence

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseStockRepository implements warehouse.StockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormWarehouseStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.StockEntry, error) {
	var entry warehouse.StockEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByKey finds the active entry for a warehouse/product/variant
func (r *GormWarehouseStockRepository) FindByKey(ctx context.Context, tenantID, warehouseID, productID, variantID uuid.UUID) (*warehouse.StockEntry, error) {
	var entry warehouse.StockEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ? AND variant_id = ? AND is_active = ?",
			tenantID, warehouseID, productID, variantID, true).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByWarehouse lists the active entries of a warehouse
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]warehouse.StockEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&warehouse.StockEntry{}).
		Where("tenant_id = ? AND warehouse_id = ? AND is_active = ?", tenantID, warehouseID, true)

	var entries []warehouse.StockEntry
	total, err := findPage(query, filter, StockSortFields, "updated_at", &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Save updates entry metadata. Quantity is only changed through AddOrCreate and Decrement.
func (r *GormWarehouseStockRepository) Save(ctx context.Context, entry *warehouse.StockEntry) error {
	result := r.db.WithContext(ctx).Model(&warehouse.StockEntry{}).
		Where("tenant_id = ? AND id = ?", entry.TenantID, entry.ID).
		Updates(map[string]any{
			"notes":      entry.Notes,
			"is_active":  entry.IsActive,
			"version":    entry.Version,
			"updated_at": entry.UpdatedAt,
			"updated_by": entry.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddOrCreate upserts on (warehouse, product, variant). An existing row has
// quantity added and is reactivated.
func (r *GormWarehouseStockRepository) AddOrCreate(ctx context.Context, entry *warehouse.StockEntry, quantity int64) (*warehouse.StockEntry, error) {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return nil, err
	}
	entry.Quantity = quantity
	entry.IsActive = true

	updates := map[string]any{
		"quantity":   gorm.Expr("warehouse_stock_entries.quantity + ?", quantity),
		"is_active":  true,
		"version":    gorm.Expr("warehouse_stock_entries.version + 1"),
		"updated_at": time.Now(),
	}
	if entry.UpdatedBy != nil {
		updates["updated_by"] = *entry.UpdatedBy
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}, {Name: "variant_id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: entry.TableName(), Name: "tenant_id"}, Value: entry.TenantID},
		}},
		DoUpdates: clause.Assignments(updates),
	}).Create(entry)
	if result.Error != nil {
		return nil, translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrDuplicateEntry
	}

	var stored warehouse.StockEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ? AND variant_id = ?",
			entry.TenantID, entry.WarehouseID, entry.ProductID, entry.VariantID).
		First(&stored).Error; err != nil {
		return nil, notFound(err)
	}
	return &stored, nil
}

// Decrement subtracts quantity in one guarded UPDATE
func (r *GormWarehouseStockRepository) Decrement(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	return decrementQuantity(ctx, r.db, &warehouse.StockEntry{}, ledger.PoolWarehouse, tenantID, id, quantity, userID)
}

var _ warehouse.StockRepository = (*GormWarehouseStockRepository)(nil)
