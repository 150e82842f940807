// Package ledger holds the quantity rules shared by every inventory pool.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// Pool identifies one of the quantity stores goods move through
type Pool string

const (
	PoolWarehouse      Pool = "warehouse"
	PoolVanInTransit   Pool = "van_in_transit"
	PoolLocationOnHand Pool = "location_on_hand"
	PoolOutward        Pool = "outward"
	PoolUnlisted       Pool = "unlisted"
)

// IsValid reports whether p is a known pool
func (p Pool) IsValid() bool {
	switch p {
	case PoolWarehouse, PoolVanInTransit, PoolLocationOnHand, PoolOutward, PoolUnlisted:
		return true
	}
	return false
}

// String returns the pool name
func (p Pool) String() string {
	return string(p)
}

// Key addresses a single quantity row.
// OwnerID is the warehouse, van or location holding the stock.
// VariantID is uuid.Nil when the product has no variant.
type Key struct {
	Pool      Pool
	OwnerID   uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.UUID
}

// NewKey builds a key, mapping a nil variant pointer to uuid.Nil
func NewKey(pool Pool, ownerID, productID uuid.UUID, variantID *uuid.UUID) Key {
	return Key{
		Pool:      pool,
		OwnerID:   ownerID,
		ProductID: productID,
		VariantID: VariantOrNil(variantID),
	}
}

// String renders the key for logs and lock names
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.Pool, k.OwnerID, k.ProductID, k.VariantID)
}

// HasVariant reports whether the key targets a specific variant
func (k Key) HasVariant() bool {
	return k.VariantID != uuid.Nil
}

// VariantOrNil dereferences an optional variant id
func VariantOrNil(variantID *uuid.UUID) uuid.UUID {
	if variantID == nil {
		return uuid.Nil
	}
	return *variantID
}

// VariantPtr is the inverse of VariantOrNil
func VariantPtr(variantID uuid.UUID) *uuid.UUID {
	if variantID == uuid.Nil {
		return nil
	}
	v := variantID
	return &v
}
