package location

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// OnHandRepository persists location on-hand entries.
// Quantity changes go through Increment/Decrement/AddOrCreate, which apply
// the change in a single guarded statement. Save is version checked.
type OnHandRepository interface {
	// FindByIDForTenant finds an entry by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OnHandEntry, error)

	// FindByKey finds the active entry for a location/product/variant
	FindByKey(ctx context.Context, tenantID, locationID, productID, variantID uuid.UUID) (*OnHandEntry, error)

	// ExistsByKey reports whether any entry, active or not, uses the key.
	// excludeID is ignored when uuid.Nil.
	ExistsByKey(ctx context.Context, tenantID, locationID, productID, variantID, excludeID uuid.UUID) (bool, error)

	// FindByLocation lists active entries at a location with the total count
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]OnHandEntry, int64, error)

	// Create inserts a new entry, failing with shared.ErrDuplicateEntry on a key clash
	Create(ctx context.Context, entry *OnHandEntry) error

	// SaveWithLock updates the entry if its version is unchanged since it was loaded
	SaveWithLock(ctx context.Context, entry *OnHandEntry) error

	// Increment atomically adds quantity
	Increment(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error

	// Decrement atomically subtracts quantity, failing with
	// ledger.ErrInsufficientQuantity if that would make it negative
	Decrement(ctx context.Context, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error

	// AddOrCreate inserts the entry with quantity, or adds quantity to the row
	// with the same key (reactivating it). Returns the stored row.
	AddOrCreate(ctx context.Context, entry *OnHandEntry, quantity int64) (*OnHandEntry, error)
}

// OutwardRepository persists outward entries
type OutwardRepository interface {
	Create(ctx context.Context, entry *OutwardEntry) error

	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OutwardEntry, error)

	// FindByLocation lists outward entries at a location
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, activeOnly bool, filter shared.Filter) ([]OutwardEntry, int64, error)

	// MarkInactive flips an active entry to inactive. It returns false when
	// the entry was already inactive, so only one caller ever wins the flip.
	MarkInactive(ctx context.Context, tenantID, id uuid.UUID, userID uuid.UUID) (bool, error)
}

// UnlistedRepository persists unlisted entries
type UnlistedRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*UnlistedEntry, error)

	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]UnlistedEntry, int64, error)

	// AddOrCreate inserts the entry, or adds its quantity to the existing row
	// for the same barcode and location. Returns the stored row.
	AddOrCreate(ctx context.Context, entry *UnlistedEntry) (*UnlistedEntry, error)

	// Delete removes the row permanently
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
