package persistence

import (
	"context"
	"fmt"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferenceRecord is the replicated slice of master data the ledgers check
// against. ProductID is only set on product variants.
type ReferenceRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null"`
	ProductID *uuid.UUID `gorm:"type:uuid"`
	Name      string     `gorm:"type:varchar(200)"`
	IsActive  bool       `gorm:"not null;default:true"`
}

// ReferenceTables maps each master data kind to its table
var ReferenceTables = map[reference.Kind]string{
	reference.KindWarehouse: "warehouses",
	reference.KindVan:       "vans",
	reference.KindLocation:  "locations",
	reference.KindProduct:   "products",
	reference.KindVariant:   "product_variants",
	reference.KindUser:      "users",
	reference.KindCustomer:  "customers",
}

// GormReferenceDirectory implements reference.Directory over the replicated master data tables
type GormReferenceDirectory struct {
	db *gorm.DB
}

// NewGormReferenceDirectory creates a new GormReferenceDirectory
func NewGormReferenceDirectory(db *gorm.DB) *GormReferenceDirectory {
	return &GormReferenceDirectory{db: db}
}

// Exists reports whether an active record of kind exists for the tenant
func (d *GormReferenceDirectory) Exists(ctx context.Context, tenantID uuid.UUID, kind reference.Kind, id uuid.UUID) (bool, error) {
	table, ok := ReferenceTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown reference kind %q", kind)
	}

	var count int64
	if err := d.db.WithContext(ctx).Table(table).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, id, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s %s: %w", kind, id, err)
	}
	return count > 0, nil
}

// VariantBelongsTo reports whether variantID is an active variant of productID
func (d *GormReferenceDirectory) VariantBelongsTo(ctx context.Context, tenantID, productID, variantID uuid.UUID) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Table(ReferenceTables[reference.KindVariant]).
		Where("tenant_id = ? AND id = ? AND product_id = ? AND is_active = ?", tenantID, variantID, productID, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check variant %s: %w", variantID, err)
	}
	return count > 0, nil
}

var _ reference.Directory = (*GormReferenceDirectory)(nil)
