package persistence

import (
	"strings"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// StockSortFields contains allowed sort fields for warehouse and on-hand entries
var StockSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"product_id": true,
	"quantity":   true,
}

// TransferSortFields contains allowed sort fields for van transfer batches
var TransferSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"transfer_date": true,
	"delivery_date": true,
	"status":        true,
}

// LedgerEntrySortFields contains allowed sort fields for outward and unlisted entries
var LedgerEntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"quantity":   true,
	"barcode":    true,
}

// RouteSortFields contains allowed sort fields for routes
var RouteSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"delivery_date": true,
	"status":        true,
}

// RequestSortFields contains allowed sort fields for restock and follow-up requests
var RequestSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"request_date":  true,
	"followup_date": true,
	"status":        true,
}

// applyPage adds a whitelisted ORDER BY plus LIMIT/OFFSET to query
func applyPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.
		Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// findPage counts the rows matched by query and loads one page of them into
// dest, preloading the named associations on the page only
func findPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string, dest any, preloads ...string) (int64, error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}
	page := applyPage(base, filter, allowed, defaultField)
	for _, p := range preloads {
		page = page.Preload(p)
	}
	if err := page.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
