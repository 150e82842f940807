package warehouse

import (
	"context"
	"sync"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
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
	missing  map[uuid.UUID]bool
	variants map[uuid.UUID]uuid.UUID
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{missing: map[uuid.UUID]bool{}, variants: map[uuid.UUID]uuid.UUID{}}
}

func (d *fakeDirectory) Exists(_ context.Context, _ uuid.UUID, _ reference.Kind, id uuid.UUID) (bool, error) {
	return !d.missing[id], nil
}

func (d *fakeDirectory) VariantBelongsTo(_ context.Context, _ uuid.UUID, productID, variantID uuid.UUID) (bool, error) {
	owner, ok := d.variants[variantID]
	return !ok || owner == productID, nil
}

// MockStockRepository is a mock implementation of warehouse.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.StockEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindByKey(ctx context.Context, tenantID, warehouseID, productID, variantID uuid.UUID) (*warehouse.StockEntry, error) {
	args := m.Called(ctx, tenantID, warehouseID, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]warehouse.StockEntry, int64, error) {
	args := m.Called(ctx, tenantID, warehouseID, filter)
	return args.Get(0).([]warehouse.StockEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRepository) Save(ctx context.Context, entry *warehouse.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockRepository) AddOrCreate(ctx context.Context, entry *warehouse.StockEntry, quantity int64) (*warehouse.StockEntry, error) {
	args := m.Called(ctx, entry, quantity)
	if fn, ok := args.Get(0).(func(context.Context, *warehouse.StockEntry, int64) *warehouse.StockEntry); ok {
		return fn(ctx, entry, quantity), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockEntry), args.Error(1)
}

func (m *MockStockRepository) Decrement(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, id, quantity, userID)
	return args.Error(0)
}

// MockVanTransferRepository is a mock implementation of warehouse.VanTransferRepository
type MockVanTransferRepository struct {
	mock.Mock
}

func (m *MockVanTransferRepository) Create(ctx context.Context, batch *warehouse.VanTransferBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockVanTransferRepository) Save(ctx context.Context, batch *warehouse.VanTransferBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockVanTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.VanTransferBatch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.VanTransferBatch), args.Error(1)
}

func (m *MockVanTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, vanID *uuid.UUID, filter shared.Filter) ([]warehouse.VanTransferBatch, int64, error) {
	args := m.Called(ctx, tenantID, vanID, filter)
	return args.Get(0).([]warehouse.VanTransferBatch), args.Get(1).(int64), args.Error(2)
}

func (m *MockVanTransferRepository) SumInTransitForVan(ctx context.Context, tenantID, vanID uuid.UUID) ([]warehouse.InTransitLine, error) {
	args := m.Called(ctx, tenantID, vanID)
	return args.Get(0).([]warehouse.InTransitLine), args.Error(1)
}
