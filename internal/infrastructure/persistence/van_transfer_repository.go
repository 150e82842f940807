package persistence

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVanTransferRepository implements warehouse.VanTransferRepository using GORM
type GormVanTransferRepository struct {
	db *gorm.DB
}

// NewGormVanTransferRepository creates a new GormVanTransferRepository
func NewGormVanTransferRepository(db *gorm.DB) *GormVanTransferRepository {
	return &GormVanTransferRepository{db: db}
}

// Create inserts the batch header and all of its items
func (r *GormVanTransferRepository) Create(ctx context.Context, batch *warehouse.VanTransferBatch) error {
	for i := range batch.Items {
		batch.Items[i].BatchID = batch.ID
	}
	return translateWriteError(r.db.WithContext(ctx).Create(batch).Error)
}

// Save updates the tracking fields of the header. Items are never rewritten.
func (r *GormVanTransferRepository) Save(ctx context.Context, batch *warehouse.VanTransferBatch) error {
	result := r.db.WithContext(ctx).Model(&warehouse.VanTransferBatch{}).
		Where("tenant_id = ? AND id = ?", batch.TenantID, batch.ID).
		Updates(map[string]any{
			"status":        batch.Status,
			"delivery_date": batch.DeliveryDate,
			"driver_name":   batch.DriverName,
			"version":       batch.Version,
			"updated_at":    batch.UpdatedAt,
			"updated_by":    batch.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant loads a batch with its items
func (r *GormVanTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.VanTransferBatch, error) {
	var batch warehouse.VanTransferBatch
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&batch).Error; err != nil {
		return nil, notFound(err)
	}
	return &batch, nil
}

// FindAllForTenant lists batches with their items, optionally for one van
func (r *GormVanTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, vanID *uuid.UUID, filter shared.Filter) ([]warehouse.VanTransferBatch, int64, error) {
	query := r.db.WithContext(ctx).Model(&warehouse.VanTransferBatch{}).
		Where("tenant_id = ?", tenantID)
	if vanID != nil {
		query = query.Where("van_id = ?", *vanID)
	}

	var batches []warehouse.VanTransferBatch
	total, err := findPage(query, filter, TransferSortFields, "transfer_date", &batches, "Items")
	if err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

// SumInTransitForVan aggregates the items of the van's Pending and In Transit batches
func (r *GormVanTransferRepository) SumInTransitForVan(ctx context.Context, tenantID, vanID uuid.UUID) ([]warehouse.InTransitLine, error) {
	statuses := make([]warehouse.TransferStatus, 0, 2)
	for _, s := range warehouse.AllTransferStatuses() {
		if s.InTransit() {
			statuses = append(statuses, s)
		}
	}

	var lines []warehouse.InTransitLine
	err := r.db.WithContext(ctx).
		Table("van_transfer_items AS i").
		Select("i.product_id AS product_id, i.variant_id AS variant_id, SUM(i.quantity) AS quantity").
		Joins("JOIN van_transfer_batches AS b ON b.id = i.batch_id").
		Where("b.tenant_id = ? AND b.van_id = ? AND b.status IN ?", tenantID, vanID, statuses).
		Group("i.product_id, i.variant_id").
		Order("i.product_id, i.variant_id").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

var _ warehouse.VanTransferRepository = (*GormVanTransferRepository)(nil)
