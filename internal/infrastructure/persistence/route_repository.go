package persistence

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRouteRepository implements delivery.RouteRepository using GORM
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func orderedStops(db *gorm.DB) *gorm.DB {
	return db.Order("stop_order ASC")
}

// Create inserts the route and all of its stops
func (r *GormRouteRepository) Create(ctx context.Context, route *delivery.Route) error {
	for i := range route.Stops {
		route.Stops[i].RouteID = route.ID
	}
	return translateWriteError(r.db.WithContext(ctx).Create(route).Error)
}

// FindByIDForTenant loads a route with its stops ordered by stop order
func (r *GormRouteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.Route, error) {
	var route delivery.Route
	if err := r.db.WithContext(ctx).
		Preload("Stops", orderedStops).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&route).Error; err != nil {
		return nil, notFound(err)
	}
	return &route, nil
}

// FindAllForTenant lists routes with their stops, filtered by driver and delivery day
func (r *GormRouteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter delivery.RouteFilter) ([]delivery.Route, int64, error) {
	query := r.db.WithContext(ctx).Model(&delivery.Route{}).
		Where("tenant_id = ?", tenantID)
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.DeliveryDate != nil {
		d := *filter.DeliveryDate
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		query = query.Where("delivery_date >= ? AND delivery_date < ?", day, day.AddDate(0, 0, 1))
	}

	var routes []delivery.Route
	base := query.Session(&gorm.Session{})
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := applyPage(base, filter.Filter, RouteSortFields, "delivery_date").
		Preload("Stops", orderedStops).
		Find(&routes).Error; err != nil {
		return nil, 0, err
	}
	return routes, total, nil
}

// SaveWithLock updates the route header if its version is unchanged
func (r *GormRouteRepository) SaveWithLock(ctx context.Context, route *delivery.Route) error {
	result := r.db.WithContext(ctx).Model(&delivery.Route{}).
		Where("tenant_id = ? AND id = ? AND version = ?", route.TenantID, route.ID, route.Version-1).
		Updates(map[string]any{
			"driver_id":  route.DriverID,
			"status":     route.Status,
			"version":    route.Version,
			"updated_at": route.UpdatedAt,
			"updated_by": route.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// SaveStopOrder writes the stop order of every stop of the route
func (r *GormRouteRepository) SaveStopOrder(ctx context.Context, route *delivery.Route) error {
	for _, stop := range route.Stops {
		result := r.db.WithContext(ctx).Model(&delivery.RouteStop{}).
			Where("tenant_id = ? AND id = ? AND route_id = ?", route.TenantID, stop.ID, route.ID).
			Update("stop_order", stop.StopOrder)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// GormRouteStopRepository implements delivery.RouteStopRepository using GORM
type GormRouteStopRepository struct {
	db *gorm.DB
}

// NewGormRouteStopRepository creates a new GormRouteStopRepository
func NewGormRouteStopRepository(db *gorm.DB) *GormRouteStopRepository {
	return &GormRouteStopRepository{db: db}
}

// FindByIDForTenant finds a stop by ID within a tenant
func (r *GormRouteStopRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.RouteStop, error) {
	var stop delivery.RouteStop
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&stop).Error; err != nil {
		return nil, notFound(err)
	}
	return &stop, nil
}

// SaveWithLock updates the stop status if its version is unchanged
func (r *GormRouteStopRepository) SaveWithLock(ctx context.Context, stop *delivery.RouteStop) error {
	result := r.db.WithContext(ctx).Model(&delivery.RouteStop{}).
		Where("tenant_id = ? AND id = ? AND version = ?", stop.TenantID, stop.ID, stop.Version-1).
		Updates(map[string]any{
			"status":       stop.Status,
			"completed_at": stop.CompletedAt,
			"version":      stop.Version,
			"updated_at":   stop.UpdatedAt,
			"updated_by":   stop.UpdatedBy,
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
	_ delivery.RouteRepository     = (*GormRouteRepository)(nil)
	_ delivery.RouteStopRepository = (*GormRouteStopRepository)(nil)
)
