package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the domain sentinel
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// translateWriteError maps unique violations onto the domain sentinel.
// Requires gorm.Config.TranslateError.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateEntry
	}
	return err
}

// touchColumns are the audit columns every quantity mutation bumps
func touchColumns(userID uuid.UUID, now time.Time) map[string]any {
	cols := map[string]any{
		"version":    gorm.Expr("version + 1"),
		"updated_at": now,
	}
	if userID != uuid.Nil {
		cols["updated_by"] = userID
	}
	return cols
}

// incrementQuantity applies quantity = quantity + n to one row of model's table
func incrementQuantity(ctx context.Context, db *gorm.DB, model any, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return err
	}
	cols := touchColumns(userID, time.Now())
	cols["quantity"] = gorm.Expr("quantity + ?", quantity)

	result := db.WithContext(ctx).Model(model).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// decrementQuantity applies quantity = quantity - n only while the row still
// holds at least n units. Losing that race reports INSUFFICIENT_QUANTITY
// with the quantity actually left.
func decrementQuantity(ctx context.Context, db *gorm.DB, model any, pool ledger.Pool, tenantID, id uuid.UUID, quantity int64, userID uuid.UUID) error {
	if err := ledger.ValidateDelta(quantity); err != nil {
		return err
	}
	cols := touchColumns(userID, time.Now())
	cols["quantity"] = gorm.Expr("quantity - ?", quantity)

	result := db.WithContext(ctx).Model(model).
		Where("tenant_id = ? AND id = ? AND quantity >= ?", tenantID, id, quantity).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var current struct{ Quantity int64 }
	if err := db.WithContext(ctx).Model(model).
		Select("quantity").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Take(&current).Error; err != nil {
		return notFound(err)
	}
	return ledger.Insufficient(ledger.Key{Pool: pool}, current.Quantity, quantity)
}
