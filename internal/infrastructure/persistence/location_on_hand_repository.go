package persistence

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOnHandRepository implements location.OnHandRepository using GORM
type GormOnHandRepository struct {
	db *gorm.DB
}

// NewGormOnHandRepository creates a new GormOnHandRepository
func NewGormOnHandRepository(db *gorm.DB) *GormOnHandRepository {
	return &GormOnHandRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormOnHandRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.OnHandEntry, error) {
	var entry location.OnHandEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByKey finds the active entry for a location/product/variant
func (r *GormOnHandRepository) FindByKey(ctx context.Context, tenantID, locationID, productID, variantID uuid.UUID) (*location.OnHandEntry, error) {
	var entry location.OnHandEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ? AND product_id = ? AND variant_id = ? AND is_active = ?",
			tenantID, locationID, productID, variantID, true).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// ExistsByKey reports whether any row, active or not, already uses the key
func (r *GormOnHandRepository) ExistsByKey(ctx context.Context, tenantID, locationID, productID, variantID, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&location.OnHandEntry{}).
		Where("tenant_id = ? AND location_id = ? AND product_id = ? AND variant_id = ?",
			tenantID, locationID, productID, variantID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByLocation lists the active entries at a location
func (r *GormOnHandRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]location.OnHandEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&location.OnHandEntry{}).
		Where("tenant_id = ? AND location_id = ? AND is_active = ?", tenantID, locationID, true)

	var entries []location.OnHandEntry
	total, err := findPage(query, filter, StockSortFields, "updated_at", &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Create inserts a new entry
func (r *GormOnHandRepository) Create(ctx context.Context, entry *location.OnHandEntry) error {
	return translateWriteError(r.db.WithContext(ctx).Create(entry).Error)
}

// SaveWithLock writes every mutable column if the stored version is the one
// the entry was loaded with
func (r *GormOnHandRepository) SaveWithLock(ctx context.Context, entry *location.OnHandEntry) error {
	result := r.db.WithContext(ctx).Model(&location.OnHandEntry{}).
		Where("tenant_id = ? AND id = ? AND version = ?", entry.TenantID, entry.ID, entry.Version-1).
		Updates(map[string]any{
			"product_id":   entry.ProductID,
			"variant_id":   entry.VariantID,
			"variant_name": entry.VariantName,
			"quantity":     entry.Quantity,
			"is_active":    entry.IsActive,
			"version":      entry.Version,
			"updated_at":   entry.UpdatedAt,
			"updated_by":   entry.UpdatedBy,
		})
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Increment adds quantity in one UPDATE
func (r *GormOnHandRepository) Increment(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	return incrementQuantity(ctx, r.db, &location.OnHandEntry{}, tenantID, id, quantity, userID)
}

// Decrement subtracts quantity in one guarded UPDATE
func (r *GormOnHandRepository) Decrement(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	return decrementQuantity(ctx, r.db, &location.OnHandEntry{}, ledger.PoolLocationOnHand, tenantID, id, quantity, userID)
}

// AddOrCreate upserts on (location, product, variant). An existing row has
// quantity added and is reactivated; its variant name is kept unless empty.
func (r *GormOnHandRepository) AddOrCreate(ctx context.Context, entry *location.OnHandEntry, quantity int64) (*location.OnHandEntry, error) {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return nil, err
	}
	entry.Quantity = quantity
	entry.IsActive = true

	table := entry.TableName()
	updates := map[string]any{
		"quantity":   gorm.Expr(table+".quantity + ?", quantity),
		"is_active":  true,
		"version":    gorm.Expr(table + ".version + 1"),
		"updated_at": time.Now(),
	}
	if entry.VariantName != "" {
		updates["variant_name"] = gorm.Expr("COALESCE(NULLIF("+table+".variant_name, ''), ?)", entry.VariantName)
	}
	if entry.UpdatedBy != nil {
		updates["updated_by"] = *entry.UpdatedBy
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_id"}, {Name: "product_id"}, {Name: "variant_id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: table, Name: "tenant_id"}, Value: entry.TenantID},
		}},
		DoUpdates: clause.Assignments(updates),
	}).Create(entry)
	if result.Error != nil {
		return nil, translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrDuplicateEntry
	}

	var stored location.OnHandEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ? AND product_id = ? AND variant_id = ?",
			entry.TenantID, entry.LocationID, entry.ProductID, entry.VariantID).
		First(&stored).Error; err != nil {
		return nil, notFound(err)
	}
	return &stored, nil
}

var _ location.OnHandRepository = (*GormOnHandRepository)(nil)
