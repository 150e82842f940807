package location

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeOutward is the aggregate type for outward events
const AggregateTypeOutward = "OutwardEntry"

// RemoveMode selects what happens to the on-hand quantity when an outward entry is removed
type RemoveMode int

const (
	// RemoveWithRestore gives the deducted quantity back to the on-hand entry
	RemoveWithRestore RemoveMode = iota + 1
	// RemoveWithoutRestore only marks the entry inactive
	RemoveWithoutRestore
)

// String returns the mode name used in logs and events
func (m RemoveMode) String() string {
	switch m {
	case RemoveWithRestore:
		return "delete"
	case RemoveWithoutRestore:
		return "deactivate"
	}
	return "unknown"
}

// OutwardEntry is a completed deduction from a location's on-hand stock
type OutwardEntry struct {
	shared.TenantAggregateRoot
	LocationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null"`
	VariantName string    `gorm:"type:varchar(200)"`
	Quantity    int64     `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (OutwardEntry) TableName() string {
	return "outward_entries"
}

// NewOutwardEntry creates an active outward entry
func NewOutwardEntry(tenantID, locationID, productID uuid.UUID, variantID *uuid.UUID, variantName string, quantity int64, createdBy uuid.UUID) (*OutwardEntry, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := ledger.ValidateDelta(quantity); err != nil {
		return nil, err
	}
	entry := &OutwardEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		LocationID:          locationID,
		ProductID:           productID,
		VariantID:           ledger.VariantOrNil(variantID),
		VariantName:         variantName,
		Quantity:            quantity,
		IsActive:            true,
	}
	entry.AddDomainEvent(NewOutwardRecordedEvent(entry))
	return entry, nil
}

// SourceKey is the on-hand key this entry was deducted from
func (e *OutwardEntry) SourceKey() ledger.Key {
	return ledger.Key{Pool: ledger.PoolLocationOnHand, OwnerID: e.LocationID, ProductID: e.ProductID, VariantID: e.VariantID}
}

// Remove marks the entry inactive and returns how many units must be
// restored to the source on-hand entry. Only the first removal of an active
// entry in RemoveWithRestore mode yields a non-zero restore; repeating a
// removal is a no-op that still succeeds.
func (e *OutwardEntry) Remove(mode RemoveMode, userID uuid.UUID) (int64, error) {
	if mode != RemoveWithRestore && mode != RemoveWithoutRestore {
		return 0, shared.NewDomainErrorf("INVALID_REMOVE_MODE", "Unknown remove mode %d", mode)
	}
	if !e.IsActive {
		return 0, nil
	}

	var restore int64
	if mode == RemoveWithRestore {
		restore = e.Quantity
	}
	e.IsActive = false
	e.Touch(userID)
	e.AddDomainEvent(NewOutwardRemovedEvent(e, mode, restore))
	return restore, nil
}
