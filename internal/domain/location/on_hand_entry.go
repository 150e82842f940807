// Package location models the stock held at customer delivery locations:
// on-hand quantities, outward scans that consume them, and unlisted goods.
package location

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeOnHand is the aggregate type for on-hand events
const AggregateTypeOnHand = "LocationOnHandEntry"

// OnHandEntry is the quantity of one product variant currently stocked at a location
type OnHandEntry struct {
	shared.TenantAggregateRoot
	LocationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_on_hand_key,priority:2"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_on_hand_key,priority:3"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_on_hand_key,priority:4"`
	VariantName string    `gorm:"type:varchar(200)"`
	Quantity    int64     `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (OnHandEntry) TableName() string {
	return "location_on_hand_entries"
}

// NewOnHandEntry creates an on-hand entry with an initial quantity
func NewOnHandEntry(tenantID, locationID, productID uuid.UUID, variantID *uuid.UUID, variantName string, quantity int64, createdBy uuid.UUID) (*OnHandEntry, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, ledger.ErrNegativeQuantity
	}
	return &OnHandEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		LocationID:          locationID,
		ProductID:           productID,
		VariantID:           ledger.VariantOrNil(variantID),
		VariantName:         variantName,
		Quantity:            quantity,
		IsActive:            true,
	}, nil
}

// Key returns the ledger key of this entry
func (e *OnHandEntry) Key() ledger.Key {
	return ledger.Key{Pool: ledger.PoolLocationOnHand, OwnerID: e.LocationID, ProductID: e.ProductID, VariantID: e.VariantID}
}

// Update overwrites the descriptive fields and quantity
func (e *OnHandEntry) Update(productID uuid.UUID, variantID *uuid.UUID, variantName string, quantity int64, userID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return ledger.ErrNegativeQuantity
	}
	e.ProductID = productID
	e.VariantID = ledger.VariantOrNil(variantID)
	e.VariantName = variantName
	e.Quantity = quantity
	e.Touch(userID)
	return nil
}

// AdjustQuantity applies a signed change, refusing to go below zero
func (e *OnHandEntry) AdjustQuantity(delta int64, userID uuid.UUID) error {
	next, err := ledger.Adjust(e.Quantity, delta)
	if err != nil {
		return err
	}
	e.Quantity = next
	e.Touch(userID)
	e.AddDomainEvent(NewOnHandAdjustedEvent(e, delta))
	return nil
}

// CanSupply checks that quantity units can be consumed from this entry
func (e *OnHandEntry) CanSupply(quantity int64) error {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return err
	}
	if e.Quantity < quantity {
		return ledger.Insufficient(e.Key(), e.Quantity, quantity)
	}
	return nil
}

// Deactivate hides the entry without touching its quantity
func (e *OnHandEntry) Deactivate(userID uuid.UUID) {
	if !e.IsActive {
		return
	}
	e.IsActive = false
	e.Touch(userID)
}
