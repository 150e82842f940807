package delivery

import (
	"context"
	"sync"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []shared.DomainEvent
	for _, e := range m.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeDirectory struct {
	missing map[uuid.UUID]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{missing: map[uuid.UUID]bool{}}
}

func (d *fakeDirectory) Exists(_ context.Context, _ uuid.UUID, _ reference.Kind, id uuid.UUID) (bool, error) {
	return !d.missing[id], nil
}

func (d *fakeDirectory) VariantBelongsTo(_ context.Context, _ uuid.UUID, _, _ uuid.UUID) (bool, error) {
	return true, nil
}

// memStore keeps routes, stops, requests and on-hand rows in maps and
// implements every repository the delivery services use.
type memStore struct {
	mu        sync.Mutex
	routes    map[uuid.UUID]delivery.Route
	stops     map[uuid.UUID]delivery.RouteStop
	restocks  map[uuid.UUID]delivery.RestockRequest
	followups map[uuid.UUID]delivery.FollowupRequest
	onHand    map[uuid.UUID]location.OnHandEntry
}

func newMemStore() *memStore {
	return &memStore{
		routes:    map[uuid.UUID]delivery.Route{},
		stops:     map[uuid.UUID]delivery.RouteStop{},
		restocks:  map[uuid.UUID]delivery.RestockRequest{},
		followups: map[uuid.UUID]delivery.FollowupRequest{},
		onHand:    map[uuid.UUID]location.OnHandEntry{},
	}
}

func (m *memStore) repositories() Repositories {
	return Repositories{
		Routes:    memRoutes{m},
		Stops:     memStops{m},
		Restocks:  memRestocks{m},
		Followups: memFollowups{m},
		OnHand:    memOnHand{m},
	}
}

func checkVersion(stored, next int) error {
	if stored != next-1 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

type memRoutes struct{ m *memStore }

func (r memRoutes) Create(_ context.Context, route *delivery.Route) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	header := *route
	header.Stops = nil
	header.ClearDomainEvents()
	r.m.routes[route.ID] = header
	for _, s := range route.Stops {
		r.m.stops[s.ID] = s
	}
	return nil
}

func (r memRoutes) load(id uuid.UUID) delivery.Route {
	route := r.m.routes[id]
	route.Stops = nil
	for _, s := range r.m.stops {
		if s.RouteID == id {
			route.Stops = append(route.Stops, s)
		}
	}
	route.SortStops()
	return route
}

func (r memRoutes) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*delivery.Route, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	route, ok := r.m.routes[id]
	if !ok || route.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	loaded := r.load(id)
	return &loaded, nil
}

func (r memRoutes) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter delivery.RouteFilter) ([]delivery.Route, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []delivery.Route
	for id, route := range r.m.routes {
		if route.TenantID != tenantID {
			continue
		}
		if filter.DriverID != nil && route.DriverID != *filter.DriverID {
			continue
		}
		out = append(out, r.load(id))
	}
	return out, int64(len(out)), nil
}

func (r memRoutes) SaveWithLock(_ context.Context, route *delivery.Route) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := checkVersion(r.m.routes[route.ID].Version, route.Version); err != nil {
		return err
	}
	header := *route
	header.Stops = nil
	header.ClearDomainEvents()
	r.m.routes[route.ID] = header
	return nil
}

func (r memRoutes) SaveStopOrder(_ context.Context, route *delivery.Route) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range route.Stops {
		stored := r.m.stops[s.ID]
		stored.StopOrder = s.StopOrder
		r.m.stops[s.ID] = stored
	}
	return nil
}

type memStops struct{ m *memStore }

func (r memStops) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*delivery.RouteStop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stop, ok := r.m.stops[id]
	if !ok || stop.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	stop.ClearDomainEvents()
	return &stop, nil
}

func (r memStops) SaveWithLock(_ context.Context, stop *delivery.RouteStop) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := checkVersion(r.m.stops[stop.ID].Version, stop.Version); err != nil {
		return err
	}
	r.m.stops[stop.ID] = *stop
	return nil
}

type memRestocks struct{ m *memStore }

func (r memRestocks) Create(_ context.Context, req *delivery.RestockRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.restocks[req.ID] = *req
	return nil
}

func (r memRestocks) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*delivery.RestockRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.restocks[id]
	if !ok || req.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	req.Items = append([]delivery.RestockRequestItem(nil), req.Items...)
	req.ClearDomainEvents()
	return &req, nil
}

func (r memRestocks) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter delivery.RequestFilter) ([]delivery.RestockRequest, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []delivery.RestockRequest
	for _, req := range r.m.restocks {
		if req.TenantID != tenantID || (filter.Status != nil && req.Status != *filter.Status) {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (r memRestocks) SaveWithLock(_ context.Context, req *delivery.RestockRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := checkVersion(r.m.restocks[req.ID].Version, req.Version); err != nil {
		return err
	}
	r.m.restocks[req.ID] = *req
	return nil
}

type memFollowups struct{ m *memStore }

func (r memFollowups) Create(_ context.Context, req *delivery.FollowupRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.followups[req.ID] = *req
	return nil
}

func (r memFollowups) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*delivery.FollowupRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.followups[id]
	if !ok || req.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	req.ClearDomainEvents()
	return &req, nil
}

func (r memFollowups) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ delivery.RequestFilter) ([]delivery.FollowupRequest, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []delivery.FollowupRequest
	for _, req := range r.m.followups {
		if req.TenantID == tenantID {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (r memFollowups) SaveWithLock(_ context.Context, req *delivery.FollowupRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := checkVersion(r.m.followups[req.ID].Version, req.Version); err != nil {
		return err
	}
	r.m.followups[req.ID] = *req
	return nil
}

// memOnHand supports only what materialization needs
type memOnHand struct{ m *memStore }

func (r memOnHand) byKey(tenantID, locationID, productID, variantID uuid.UUID) (location.OnHandEntry, bool) {
	for _, e := range r.m.onHand {
		if e.TenantID == tenantID && e.LocationID == locationID && e.ProductID == productID && e.VariantID == variantID {
			return e, true
		}
	}
	return location.OnHandEntry{}, false
}

func (r memOnHand) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*location.OnHandEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.onHand[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (r memOnHand) FindByKey(_ context.Context, tenantID, locationID, productID, variantID uuid.UUID) (*location.OnHandEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.byKey(tenantID, locationID, productID, variantID)
	if !ok || !e.IsActive {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (r memOnHand) ExistsByKey(_ context.Context, tenantID, locationID, productID, variantID, excludeID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.byKey(tenantID, locationID, productID, variantID)
	return ok && e.ID != excludeID, nil
}

func (r memOnHand) FindByLocation(context.Context, uuid.UUID, uuid.UUID, shared.Filter) ([]location.OnHandEntry, int64, error) {
	return nil, 0, nil
}

func (r memOnHand) Create(_ context.Context, entry *location.OnHandEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.onHand[entry.ID] = *entry
	return nil
}

func (r memOnHand) SaveWithLock(_ context.Context, entry *location.OnHandEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.onHand[entry.ID] = *entry
	return nil
}

func (r memOnHand) Increment(context.Context, uuid.UUID, uuid.UUID, int64, uuid.UUID) error {
	return nil
}

func (r memOnHand) Decrement(context.Context, uuid.UUID, uuid.UUID, int64, uuid.UUID) error {
	return nil
}

func (r memOnHand) AddOrCreate(_ context.Context, entry *location.OnHandEntry, quantity int64) (*location.OnHandEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if e, ok := r.byKey(entry.TenantID, entry.LocationID, entry.ProductID, entry.VariantID); ok {
		e.Quantity += quantity
		e.IsActive = true
		r.m.onHand[e.ID] = e
		return &e, nil
	}
	created := *entry
	created.Quantity = quantity
	r.m.onHand[created.ID] = created
	return &created, nil
}

// MockRouteOptimizer is a mock implementation of delivery.RouteOptimizer
type MockRouteOptimizer struct {
	mock.Mock
}

func (m *MockRouteOptimizer) OptimizeRoute(ctx context.Context, routeID uuid.UUID, stops []delivery.OptimizeStop) (*delivery.OptimizeResult, error) {
	args := m.Called(ctx, routeID, stops)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.OptimizeResult), args.Error(1)
}
