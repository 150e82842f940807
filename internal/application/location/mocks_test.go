package location

import (
	"context"
	"sync"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
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

// fakeDirectory treats every id as existing unless listed in missing
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

// memOnHandRepo is a map backed location.OnHandRepository
type memOnHandRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*location.OnHandEntry
}

func newMemOnHandRepo() *memOnHandRepo {
	return &memOnHandRepo{entries: map[uuid.UUID]*location.OnHandEntry{}}
}

func (r *memOnHandRepo) put(e *location.OnHandEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries[e.ID] = &cp
}

func (r *memOnHandRepo) get(id uuid.UUID) location.OnHandEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.entries[id]
}

func (r *memOnHandRepo) byKey(tenantID, locationID, productID, variantID uuid.UUID) *location.OnHandEntry {
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.LocationID == locationID && e.ProductID == productID && e.VariantID == variantID {
			return e
		}
	}
	return nil
}

func (r *memOnHandRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*location.OnHandEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memOnHandRepo) FindByKey(_ context.Context, tenantID, locationID, productID, variantID uuid.UUID) (*location.OnHandEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.byKey(tenantID, locationID, productID, variantID)
	if e == nil || !e.IsActive {
		return nil, shared.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memOnHandRepo) ExistsByKey(_ context.Context, tenantID, locationID, productID, variantID, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.byKey(tenantID, locationID, productID, variantID)
	return e != nil && e.ID != excludeID, nil
}

func (r *memOnHandRepo) FindByLocation(_ context.Context, tenantID, locationID uuid.UUID, _ shared.Filter) ([]location.OnHandEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []location.OnHandEntry
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.LocationID == locationID && e.IsActive {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOnHandRepo) Create(_ context.Context, entry *location.OnHandEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byKey(entry.TenantID, entry.LocationID, entry.ProductID, entry.VariantID) != nil {
		return shared.ErrDuplicateEntry
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *memOnHandRepo) SaveWithLock(_ context.Context, entry *location.OnHandEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.entries[entry.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if cur.Version != entry.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *memOnHandRepo) Increment(_ context.Context, tenantID, id uuid.UUID, quantity int64, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TenantID != tenantID {
		return shared.ErrNotFound
	}
	e.Quantity += quantity
	return nil
}

func (r *memOnHandRepo) Decrement(_ context.Context, tenantID, id uuid.UUID, quantity int64, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TenantID != tenantID {
		return shared.ErrNotFound
	}
	if e.Quantity < quantity {
		return ledger.Insufficient(e.Key(), e.Quantity, quantity)
	}
	e.Quantity -= quantity
	return nil
}

func (r *memOnHandRepo) AddOrCreate(_ context.Context, entry *location.OnHandEntry, quantity int64) (*location.OnHandEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e := r.byKey(entry.TenantID, entry.LocationID, entry.ProductID, entry.VariantID); e != nil {
		e.Quantity += quantity
		e.IsActive = true
		cp := *e
		return &cp, nil
	}
	cp := *entry
	cp.Quantity = quantity
	r.entries[cp.ID] = &cp
	out := cp
	return &out, nil
}

// memOutwardRepo is a map backed location.OutwardRepository
type memOutwardRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*location.OutwardEntry
}

func newMemOutwardRepo() *memOutwardRepo {
	return &memOutwardRepo{entries: map[uuid.UUID]*location.OutwardEntry{}}
}

func (r *memOutwardRepo) Create(_ context.Context, entry *location.OutwardEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *memOutwardRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*location.OutwardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	cp := *e
	cp.ClearDomainEvents()
	return &cp, nil
}

func (r *memOutwardRepo) FindByLocation(_ context.Context, tenantID, locationID uuid.UUID, activeOnly bool, _ shared.Filter) ([]location.OutwardEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []location.OutwardEntry
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.LocationID == locationID && (!activeOnly || e.IsActive) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOutwardRepo) MarkInactive(_ context.Context, tenantID, id uuid.UUID, _ uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.TenantID != tenantID {
		return false, shared.ErrNotFound
	}
	if !e.IsActive {
		return false, nil
	}
	e.IsActive = false
	return true, nil
}

// MockUnlistedRepository is a mock implementation of location.UnlistedRepository
type MockUnlistedRepository struct {
	mock.Mock
}

func (m *MockUnlistedRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*location.UnlistedEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.UnlistedEntry), args.Error(1)
}

func (m *MockUnlistedRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]location.UnlistedEntry, int64, error) {
	args := m.Called(ctx, tenantID, locationID, filter)
	return args.Get(0).([]location.UnlistedEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnlistedRepository) AddOrCreate(ctx context.Context, entry *location.UnlistedEntry) (*location.UnlistedEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.UnlistedEntry), args.Error(1)
}

func (m *MockUnlistedRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
