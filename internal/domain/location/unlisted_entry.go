package location

import (
	"strings"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeUnlisted is the aggregate type for unlisted events
const AggregateTypeUnlisted = "UnlistedEntry"

// UnlistedEntry counts goods scanned at a location that have no catalog product.
// There is one row per (barcode, location).
type UnlistedEntry struct {
	shared.TenantAggregateRoot
	Barcode    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_unlisted_key,priority:2"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_unlisted_key,priority:3"`
	Quantity   int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (UnlistedEntry) TableName() string {
	return "unlisted_entries"
}

// NewUnlistedEntry creates an unlisted entry. The barcode is trimmed.
func NewUnlistedEntry(tenantID uuid.UUID, barcode string, locationID uuid.UUID, quantity int64, createdBy uuid.UUID) (*UnlistedEntry, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if err := ledger.ValidateDelta(quantity); err != nil {
		return nil, err
	}
	return &UnlistedEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Barcode:             barcode,
		LocationID:          locationID,
		Quantity:            quantity,
	}, nil
}
