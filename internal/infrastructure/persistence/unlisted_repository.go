package persistence

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnlistedRepository implements location.UnlistedRepository using GORM
type GormUnlistedRepository struct {
	db *gorm.DB
}

// NewGormUnlistedRepository creates a new GormUnlistedRepository
func NewGormUnlistedRepository(db *gorm.DB) *GormUnlistedRepository {
	return &GormUnlistedRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormUnlistedRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.UnlistedEntry, error) {
	var entry location.UnlistedEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByLocation lists unlisted entries at a location
func (r *GormUnlistedRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]location.UnlistedEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&location.UnlistedEntry{}).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID)

	var entries []location.UnlistedEntry
	total, err := findPage(query, filter, LedgerEntrySortFields, "created_at", &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// AddOrCreate upserts on (barcode, location), adding the entry's quantity to an existing row
func (r *GormUnlistedRepository) AddOrCreate(ctx context.Context, entry *location.UnlistedEntry) (*location.UnlistedEntry, error) {
	table := entry.TableName()
	updates := map[string]any{
		"quantity":   gorm.Expr(table+".quantity + ?", entry.Quantity),
		"version":    gorm.Expr(table + ".version + 1"),
		"updated_at": time.Now(),
	}
	if entry.UpdatedBy != nil {
		updates["updated_by"] = *entry.UpdatedBy
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barcode"}, {Name: "location_id"}},
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

	var stored location.UnlistedEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND barcode = ? AND location_id = ?", entry.TenantID, entry.Barcode, entry.LocationID).
		First(&stored).Error; err != nil {
		return nil, notFound(err)
	}
	return &stored, nil
}

// Delete removes the row permanently
func (r *GormUnlistedRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&location.UnlistedEntry{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ location.UnlistedRepository = (*GormUnlistedRepository)(nil)
