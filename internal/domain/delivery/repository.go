package delivery

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// RouteFilter narrows route listings
type RouteFilter struct {
	shared.Filter
	DriverID     *uuid.UUID
	DeliveryDate *time.Time
}

// RouteRepository persists routes and their stops
type RouteRepository interface {
	// Create inserts a route with all of its stops
	Create(ctx context.Context, route *Route) error

	// FindByIDForTenant loads a route with its stops ordered by stop order
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Route, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RouteFilter) ([]Route, int64, error)

	// SaveWithLock updates the route header if its version is unchanged
	SaveWithLock(ctx context.Context, route *Route) error

	// SaveStopOrder persists the stop order of every stop of the route
	SaveStopOrder(ctx context.Context, route *Route) error
}

// RouteStopRepository persists individual stops
type RouteStopRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RouteStop, error)

	// SaveWithLock updates the stop if its version is unchanged
	SaveWithLock(ctx context.Context, stop *RouteStop) error
}

// RequestFilter narrows request listings
type RequestFilter struct {
	shared.Filter
	LocationID *uuid.UUID
	Status     *RequestStatus
}

// RestockRequestRepository persists restock requests and their items
type RestockRequestRepository interface {
	Create(ctx context.Context, req *RestockRequest) error

	// FindByIDForTenant loads a request with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RestockRequest, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RequestFilter) ([]RestockRequest, int64, error)

	// SaveWithLock updates the request header and item delivered quantities
	// if the request version is unchanged
	SaveWithLock(ctx context.Context, req *RestockRequest) error
}

// FollowupRequestRepository persists follow-up requests
type FollowupRequestRepository interface {
	Create(ctx context.Context, req *FollowupRequest) error

	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FollowupRequest, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter RequestFilter) ([]FollowupRequest, int64, error)

	SaveWithLock(ctx context.Context, req *FollowupRequest) error
}
