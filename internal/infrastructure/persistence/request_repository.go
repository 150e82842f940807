package persistence

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func applyRequestFilter(query *gorm.DB, filter delivery.RequestFilter) *gorm.DB {
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// GormRestockRequestRepository implements delivery.RestockRequestRepository using GORM
type GormRestockRequestRepository struct {
	db *gorm.DB
}

// NewGormRestockRequestRepository creates a new GormRestockRequestRepository
func NewGormRestockRequestRepository(db *gorm.DB) *GormRestockRequestRepository {
	return &GormRestockRequestRepository{db: db}
}

// Create inserts the request and its items
func (r *GormRestockRequestRepository) Create(ctx context.Context, req *delivery.RestockRequest) error {
	for i := range req.Items {
		req.Items[i].RequestID = req.ID
	}
	return translateWriteError(r.db.WithContext(ctx).Create(req).Error)
}

// FindByIDForTenant loads a request with its items
func (r *GormRestockRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.RestockRequest, error) {
	var req delivery.RestockRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&req).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

// FindAllForTenant lists requests with their items
func (r *GormRestockRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter delivery.RequestFilter) ([]delivery.RestockRequest, int64, error) {
	query := applyRequestFilter(
		r.db.WithContext(ctx).Model(&delivery.RestockRequest{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var reqs []delivery.RestockRequest
	total, err := findPage(query, filter.Filter, RequestSortFields, "request_date", &reqs, "Items")
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// SaveWithLock updates the header under a version check, then the delivered
// quantity of every item that has one
func (r *GormRestockRequestRepository) SaveWithLock(ctx context.Context, req *delivery.RestockRequest) error {
	result := r.db.WithContext(ctx).Model(&delivery.RestockRequest{}).
		Where("tenant_id = ? AND id = ? AND version = ?", req.TenantID, req.ID, req.Version-1).
		Updates(map[string]any{
			"status":          req.Status,
			"materialized_at": req.MaterializedAt,
			"version":         req.Version,
			"updated_at":      req.UpdatedAt,
			"updated_by":      req.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	for _, item := range req.Items {
		if item.DeliveredQuantity == nil {
			continue
		}
		if err := r.db.WithContext(ctx).Model(&delivery.RestockRequestItem{}).
			Where("id = ? AND request_id = ?", item.ID, req.ID).
			Update("delivered_quantity", *item.DeliveredQuantity).Error; err != nil {
			return err
		}
	}
	return nil
}

// GormFollowupRequestRepository implements delivery.FollowupRequestRepository using GORM
type GormFollowupRequestRepository struct {
	db *gorm.DB
}

// NewGormFollowupRequestRepository creates a new GormFollowupRequestRepository
func NewGormFollowupRequestRepository(db *gorm.DB) *GormFollowupRequestRepository {
	return &GormFollowupRequestRepository{db: db}
}

// Create inserts a follow-up request
func (r *GormFollowupRequestRepository) Create(ctx context.Context, req *delivery.FollowupRequest) error {
	return translateWriteError(r.db.WithContext(ctx).Create(req).Error)
}

// FindByIDForTenant finds a follow-up request within a tenant
func (r *GormFollowupRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.FollowupRequest, error) {
	var req delivery.FollowupRequest
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&req).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

// FindAllForTenant lists follow-up requests
func (r *GormFollowupRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter delivery.RequestFilter) ([]delivery.FollowupRequest, int64, error) {
	query := applyRequestFilter(
		r.db.WithContext(ctx).Model(&delivery.FollowupRequest{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var reqs []delivery.FollowupRequest
	total, err := findPage(query, filter.Filter, RequestSortFields, "followup_date", &reqs)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// SaveWithLock updates the status if the version is unchanged
func (r *GormFollowupRequestRepository) SaveWithLock(ctx context.Context, req *delivery.FollowupRequest) error {
	result := r.db.WithContext(ctx).Model(&delivery.FollowupRequest{}).
		Where("tenant_id = ? AND id = ? AND version = ?", req.TenantID, req.ID, req.Version-1).
		Updates(map[string]any{
			"status":     req.Status,
			"version":    req.Version,
			"updated_at": req.UpdatedAt,
			"updated_by": req.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var (
	_ delivery.RestockRequestRepository  = (*GormRestockRequestRepository)(nil)
	_ delivery.FollowupRequestRepository = (*GormFollowupRequestRepository)(nil)
)
