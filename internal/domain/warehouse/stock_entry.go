// Package warehouse models warehouse stock and the van transfers that draw from it.
package warehouse

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeStockEntry is the aggregate type for warehouse stock events
const AggregateTypeStockEntry = "WarehouseStockEntry"

// StockEntry is the on-shelf quantity of one product variant in one warehouse.
// Entries are never deleted, only deactivated.
type StockEntry struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:2"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:3"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:4"`
	Quantity    int64     `gorm:"not null;default:0"`
	Notes       string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "warehouse_stock_entries"
}

// NewStockEntry creates an empty stock entry for a warehouse/product/variant
func NewStockEntry(tenantID, warehouseID, productID uuid.UUID, variantID *uuid.UUID, createdBy uuid.UUID) (*StockEntry, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &StockEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		WarehouseID:         warehouseID,
		ProductID:           productID,
		VariantID:           ledger.VariantOrNil(variantID),
		IsActive:            true,
	}, nil
}

// Key returns the ledger key of this entry
func (e *StockEntry) Key() ledger.Key {
	return ledger.Key{Pool: ledger.PoolWarehouse, OwnerID: e.WarehouseID, ProductID: e.ProductID, VariantID: e.VariantID}
}

// CanSupply checks that quantity units can be taken without going below zero
func (e *StockEntry) CanSupply(quantity int64) error {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return err
	}
	if e.Quantity < quantity {
		return ledger.Insufficient(e.Key(), e.Quantity, quantity)
	}
	return nil
}

// Deactivate hides the entry from listings and transfers
func (e *StockEntry) Deactivate(userID uuid.UUID) {
	if !e.IsActive {
		return
	}
	e.IsActive = false
	e.Touch(userID)
}
