package warehouse

import (
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeVanTransfer is the aggregate type for van transfer events
const AggregateTypeVanTransfer = "VanTransferBatch"

// TransferStatus tracks a van transfer batch. It has no ledger effect.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "Pending"
	TransferStatusInTransit TransferStatus = "In Transit"
	TransferStatusDelivered TransferStatus = "Delivered"
	TransferStatusCancelled TransferStatus = "Cancelled"
)

// AllTransferStatuses lists the accepted transfer statuses
func AllTransferStatuses() []TransferStatus {
	return []TransferStatus{TransferStatusPending, TransferStatusInTransit, TransferStatusDelivered, TransferStatusCancelled}
}

// IsValid reports whether s is a known transfer status
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInTransit, TransferStatusDelivered, TransferStatusCancelled:
		return true
	}
	return false
}

// InTransit reports whether goods on a batch with this status are still on the van
func (s TransferStatus) InTransit() bool {
	return s == TransferStatusPending || s == TransferStatusInTransit
}

// VanTransferItem is one immutable line of a batch
type VanTransferItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	VariantID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (VanTransferItem) TableName() string {
	return "van_transfer_items"
}

// TransferLine is the input for one line of a new batch
type TransferLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int64
}

// VanTransferBatch records goods moved from a warehouse into a van
type VanTransferBatch struct {
	shared.TenantAggregateRoot
	VanID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	WarehouseID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	LocationID   *uuid.UUID        `gorm:"type:uuid"`
	TransferDate time.Time         `gorm:"not null"`
	DeliveryDate *time.Time        `gorm:""`
	DriverName   string            `gorm:"type:varchar(200)"`
	Status       TransferStatus    `gorm:"type:varchar(30);not null;default:'Pending'"`
	Items        []VanTransferItem `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName returns the table name for GORM
func (VanTransferBatch) TableName() string {
	return "van_transfer_batches"
}

// NewVanTransferBatch builds a pending batch. Lines for the same product
// variant are kept as separate items, matching what the driver scanned.
func NewVanTransferBatch(tenantID, vanID, warehouseID uuid.UUID, locationID *uuid.UUID, lines []TransferLine, createdBy uuid.UUID) (*VanTransferBatch, error) {
	if vanID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VAN", "Van ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_TRANSFER", "A transfer needs at least one item")
	}

	batch := &VanTransferBatch{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		VanID:               vanID,
		WarehouseID:         warehouseID,
		LocationID:          locationID,
		TransferDate:        time.Now(),
		Status:              TransferStatusPending,
	}
	for _, line := range lines {
		if err := ledger.ValidateDelta(line.Quantity); err != nil {
			return nil, err
		}
		batch.Items = append(batch.Items, VanTransferItem{
			ID:        uuid.New(),
			BatchID:   batch.ID,
			ProductID: line.ProductID,
			VariantID: ledger.VariantOrNil(line.VariantID),
			Quantity:  line.Quantity,
			CreatedAt: batch.CreatedAt,
		})
	}

	batch.AddDomainEvent(NewVanTransferCreatedEvent(batch))
	return batch, nil
}

// TotalQuantity sums every line
func (b *VanTransferBatch) TotalQuantity() int64 {
	var total int64
	for _, item := range b.Items {
		total += item.Quantity
	}
	return total
}

// DemandByKey sums the requested quantity per warehouse ledger key
func (b *VanTransferBatch) DemandByKey() map[ledger.Key]int64 {
	demand := make(map[ledger.Key]int64, len(b.Items))
	for _, item := range b.Items {
		key := ledger.Key{Pool: ledger.PoolWarehouse, OwnerID: b.WarehouseID, ProductID: item.ProductID, VariantID: item.VariantID}
		demand[key] += item.Quantity
	}
	return demand
}

// UpdateStatus changes the tracking status and optional delivery metadata
func (b *VanTransferBatch) UpdateStatus(status TransferStatus, deliveryDate *time.Time, driverName *string, userID uuid.UUID) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "Unknown transfer status %q", status)
	}
	from := b.Status
	b.Status = status
	if deliveryDate != nil {
		b.DeliveryDate = deliveryDate
	}
	if driverName != nil {
		b.DriverName = *driverName
	}
	b.Touch(userID)

	if from != status {
		b.AddDomainEvent(NewVanTransferStatusChangedEvent(b, from))
	}
	return nil
}
