package persistence

import (
	"fmt"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

// Models lists the ledger tables owned by this service
func Models() []any {
	return []any{
		&warehouse.StockEntry{},
		&warehouse.VanTransferBatch{},
		&warehouse.VanTransferItem{},
		&location.OnHandEntry{},
		&location.OutwardEntry{},
		&location.UnlistedEntry{},
		&delivery.Route{},
		&delivery.RouteStop{},
		&delivery.RestockRequest{},
		&delivery.RestockRequestItem{},
		&delivery.FollowupRequest{},
	}
}

// AutoMigrate creates every table from the gorm models, including the
// replicated reference tables. Deployed databases are migrated with the SQL
// files under migrations/; this is for sqlite-backed tests and local runs.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate ledger tables: %w", err)
	}
	for _, table := range ReferenceTables {
		if err := db.Table(table).AutoMigrate(&ReferenceRecord{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", table, err)
		}
	}
	return nil
}
