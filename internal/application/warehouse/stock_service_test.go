package warehouse

import (
	"context"
	"testing"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStockService_ReceiveStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStockRepository)
	publisher := &MockEventPublisher{}
	service := NewStockService(repo, newFakeDirectory())
	service.SetEventPublisher(publisher)

	tenant, user, wh, product := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	repo.On("AddOrCreate", mock.Anything, mock.AnythingOfType("*warehouse.StockEntry"), int64(10)).
		Return(func(_ context.Context, e *warehouse.StockEntry, qty int64) *warehouse.StockEntry {
			e.Quantity += qty
			return e
		}, nil)

	resp, err := service.ReceiveStock(ctx, tenant, user, ReceiveStockRequest{WarehouseID: wh, ProductID: product, Quantity: 10, Notes: "pallet 4"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Quantity)
	assert.Equal(t, "pallet 4", resp.Notes)
	assert.Nil(t, resp.ProductVariationID)
	assert.Len(t, publisher.GetEventsByType(warehouse.EventTypeStockReceived), 1)
}

func TestStockService_DeactivateStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStockRepository)
	service := NewStockService(repo, newFakeDirectory())

	tenant := uuid.New()
	entry, err := warehouse.NewStockEntry(tenant, uuid.New(), uuid.New(), nil, uuid.New())
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenant, entry.ID).Return(entry, nil)
	repo.On("Save", mock.Anything, entry).Return(nil)

	resp, err := service.DeactivateStock(ctx, tenant, entry.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	repo.AssertExpectations(t)
}
