package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// poolTables maps each pool gauge to the table it sums.
var poolTables = []struct {
	pool       string
	table      string
	activeOnly bool
}{
	{"warehouse", "warehouse_stock_entries", true},
	{"location_on_hand", "location_on_hand_entries", true},
	{"outward", "outward_entries", true},
	{"unlisted", "unlisted_entries", false},
}

// GormLedgerSnapshotProvider implements LedgerSnapshotProvider with GORM.
type GormLedgerSnapshotProvider struct {
	db *gorm.DB
}

// NewGormLedgerSnapshotProvider creates a new GormLedgerSnapshotProvider.
func NewGormLedgerSnapshotProvider(db *gorm.DB) *GormLedgerSnapshotProvider {
	return &GormLedgerSnapshotProvider{db: db}
}

// PoolTotals sums the quantity column of every pool table for a tenant.
func (p *GormLedgerSnapshotProvider) PoolTotals(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error) {
	totals := make(map[string]int64, len(poolTables)+1)
	for _, pt := range poolTables {
		var sum int64
		q := p.db.WithContext(ctx).
			Table(pt.table).
			Select("COALESCE(SUM(quantity), 0)").
			Where("tenant_id = ?", tenantID)
		if pt.activeOnly {
			q = q.Where("is_active = ?", true)
		}
		if err := q.Scan(&sum).Error; err != nil {
			return nil, err
		}
		totals[pt.pool] = sum
	}

	var inTransit int64
	err := p.db.WithContext(ctx).
		Table("van_transfer_items AS i").
		Joins("JOIN van_transfer_batches b ON b.id = i.batch_id").
		Select("COALESCE(SUM(i.quantity), 0)").
		Where("b.tenant_id = ? AND b.status IN ?", tenantID, []string{"Pending", "In Transit"}).
		Scan(&inTransit).Error
	if err != nil {
		return nil, err
	}
	totals["van_in_transit"] = inTransit
	return totals, nil
}

// GormTenantProvider implements TenantProvider from the stock tables.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns every tenant with warehouse or location stock.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Raw("SELECT DISTINCT tenant_id FROM warehouse_stock_entries UNION SELECT DISTINCT tenant_id FROM location_on_hand_entries").
		Scan(&ids).Error
	return ids, err
}
