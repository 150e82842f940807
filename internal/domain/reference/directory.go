// Package reference describes the master data the ledgers validate against.
// Vans, warehouses, locations, products, variants and users are owned by
// other services; this package only answers existence questions about them.
package reference

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind names a master data table
type Kind string

const (
	KindWarehouse Kind = "warehouse"
	KindVan       Kind = "van"
	KindLocation  Kind = "location"
	KindProduct   Kind = "product"
	KindVariant   Kind = "product variant"
	KindUser      Kind = "user"
	KindCustomer  Kind = "customer"
)

// Directory answers existence checks for master data within a tenant
type Directory interface {
	// Exists reports whether an active record of the given kind exists
	Exists(ctx context.Context, tenantID uuid.UUID, kind Kind, id uuid.UUID) (bool, error)

	// VariantBelongsTo reports whether variantID is a variant of productID
	VariantBelongsTo(ctx context.Context, tenantID, productID, variantID uuid.UUID) (bool, error)
}

// Validation error codes
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeVariantMismatch = "VARIANT_MISMATCH"
)

// Check is one existence requirement
type Check struct {
	Kind Kind
	ID   uuid.UUID
}

// Require fails with a validation error naming the first missing record.
// A check with a nil id is treated as missing.
func Require(ctx context.Context, dir Directory, tenantID uuid.UUID, checks ...Check) error {
	for _, c := range checks {
		if c.ID == uuid.Nil {
			return shared.NewDomainErrorf(CodeValidation, "%s id is required", c.Kind)
		}
		ok, err := dir.Exists(ctx, tenantID, c.Kind, c.ID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainErrorf(CodeValidation, "Invalid %s: %s", c.Kind, c.ID)
		}
	}
	return nil
}

// RequireVariant validates that the product exists and, when a variant is
// given, that it belongs to that product.
func RequireVariant(ctx context.Context, dir Directory, tenantID, productID uuid.UUID, variantID *uuid.UUID) error {
	if err := Require(ctx, dir, tenantID, Check{Kind: KindProduct, ID: productID}); err != nil {
		return err
	}
	if variantID == nil || *variantID == uuid.Nil {
		return nil
	}
	ok, err := dir.VariantBelongsTo(ctx, tenantID, productID, *variantID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainErrorf(CodeVariantMismatch,
			"Variant %s does not belong to product %s", *variantID, productID)
	}
	return nil
}
