package warehouse

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository persists warehouse stock entries
type StockRepository interface {
	// FindByIDForTenant finds an entry by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockEntry, error)

	// FindByKey finds the active entry for a warehouse/product/variant.
	// variantID is uuid.Nil for products without variants.
	FindByKey(ctx context.Context, tenantID, warehouseID, productID, variantID uuid.UUID) (*StockEntry, error)

	// FindByWarehouse lists entries of a warehouse with the total count
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]StockEntry, int64, error)

	// Save updates entry metadata (notes, active flag)
	Save(ctx context.Context, entry *StockEntry) error

	// AddOrCreate inserts the entry with quantity, or atomically adds quantity
	// to the existing row with the same key. Returns the stored row.
	AddOrCreate(ctx context.Context, entry *StockEntry, quantity int64) (*StockEntry, error)

	// Decrement atomically subtracts quantity from the entry, failing with
	// ledger.ErrInsufficientQuantity if that would make it negative.
	Decrement(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error
}

// InTransitLine is the van-in-transit quantity for one product variant
type InTransitLine struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int64
}

// VanTransferRepository persists van transfer batches
type VanTransferRepository interface {
	// Create inserts a batch and its items
	Create(ctx context.Context, batch *VanTransferBatch) error

	// Save updates batch header fields. Items are never rewritten.
	Save(ctx context.Context, batch *VanTransferBatch) error

	// FindByIDForTenant loads a batch with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*VanTransferBatch, error)

	// FindAllForTenant lists batches, optionally for one van
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, vanID *uuid.UUID, filter shared.Filter) ([]VanTransferBatch, int64, error)

	// SumInTransitForVan aggregates the items of the van's batches that are still in transit
	SumInTransitForVan(ctx context.Context, tenantID, vanID uuid.UUID) ([]InTransitLine, error)
}
