package persistence

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutwardRepository implements location.OutwardRepository using GORM
type GormOutwardRepository struct {
	db *gorm.DB
}

// NewGormOutwardRepository creates a new GormOutwardRepository
func NewGormOutwardRepository(db *gorm.DB) *GormOutwardRepository {
	return &GormOutwardRepository{db: db}
}

// Create inserts an outward entry
func (r *GormOutwardRepository) Create(ctx context.Context, entry *location.OutwardEntry) error {
	return translateWriteError(r.db.WithContext(ctx).Create(entry).Error)
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormOutwardRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.OutwardEntry, error) {
	var entry location.OutwardEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByLocation lists outward entries at a location
func (r *GormOutwardRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, activeOnly bool, filter shared.Filter) ([]location.OutwardEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&location.OutwardEntry{}).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var entries []location.OutwardEntry
	total, err := findPage(query, filter, LedgerEntrySortFields, "created_at", &entries)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// MarkInactive flips is_active from true to false. The WHERE clause on
// is_active makes the flip happen at most once across concurrent callers.
func (r *GormOutwardRepository) MarkInactive(ctx context.Context, tenantID, id uuid.UUID, userID uuid.UUID) (bool, error) {
	cols := touchColumns(userID, time.Now())
	cols["is_active"] = false

	result := r.db.WithContext(ctx).Model(&location.OutwardEntry{}).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, id, true).
		Updates(cols)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

var _ location.OutwardRepository = (*GormOutwardRepository)(nil)
