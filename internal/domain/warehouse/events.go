package warehouse

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types
const (
	EventTypeStockReceived            = "WarehouseStockReceived"
	EventTypeVanTransferCreated       = "VanTransferCreated"
	EventTypeVanTransferStatusChanged = "VanTransferStatusChanged"
)

// StockReceivedEvent is raised when units are added to a warehouse entry
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	VariantID   uuid.UUID `json:"variant_id"`
	Quantity    int64     `json:"quantity"`
}

// NewStockReceivedEvent creates a StockReceivedEvent
func NewStockReceivedEvent(entry *StockEntry, quantity int64) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeStockEntry, entry.ID, entry.TenantID),
		WarehouseID:     entry.WarehouseID,
		ProductID:       entry.ProductID,
		VariantID:       entry.VariantID,
		Quantity:        quantity,
	}
}

// Movements implements shared.LedgerMovement
func (e *StockReceivedEvent) Movements() []shared.Movement {
	return []shared.Movement{{Pool: ledger.PoolWarehouse.String(), Direction: "in", Units: e.Quantity}}
}

// VanTransferCreatedEvent is raised when a batch leaves the warehouse
type VanTransferCreatedEvent struct {
	shared.BaseDomainEvent
	VanID       uuid.UUID `json:"van_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ItemCount   int       `json:"item_count"`
	Quantity    int64     `json:"quantity"`
}

// NewVanTransferCreatedEvent creates a VanTransferCreatedEvent
func NewVanTransferCreatedEvent(b *VanTransferBatch) *VanTransferCreatedEvent {
	return &VanTransferCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVanTransferCreated, AggregateTypeVanTransfer, b.ID, b.TenantID),
		VanID:           b.VanID,
		WarehouseID:     b.WarehouseID,
		ItemCount:       len(b.Items),
		Quantity:        b.TotalQuantity(),
	}
}

// Movements implements shared.LedgerMovement
func (e *VanTransferCreatedEvent) Movements() []shared.Movement {
	return []shared.Movement{
		{Pool: ledger.PoolWarehouse.String(), Direction: "out", Units: e.Quantity},
		{Pool: ledger.PoolVanInTransit.String(), Direction: "in", Units: e.Quantity},
	}
}

// VanTransferStatusChangedEvent is raised when a batch's tracking status changes
type VanTransferStatusChangedEvent struct {
	shared.BaseDomainEvent
	VanID uuid.UUID      `json:"van_id"`
	From  TransferStatus `json:"from"`
	To    TransferStatus `json:"to"`
}

// NewVanTransferStatusChangedEvent creates a VanTransferStatusChangedEvent
func NewVanTransferStatusChangedEvent(b *VanTransferBatch, from TransferStatus) *VanTransferStatusChangedEvent {
	return &VanTransferStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVanTransferStatusChanged, AggregateTypeVanTransfer, b.ID, b.TenantID),
		VanID:           b.VanID,
		From:            from,
		To:              b.Status,
	}
}
