package persistence

import (
	"context"

	appdelivery "github.com/NehaS05/NYRApi-sub000/internal/application/delivery"
	applocation "github.com/NehaS05/NYRApi-sub000/internal/application/location"
	appwarehouse "github.com/NehaS05/NYRApi-sub000/internal/application/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"gorm.io/gorm"
)

// gormTxRepositories hands out repositories bound to one transaction.
// It satisfies the TransactionalRepositories of every application package.
type gormTxRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the warehouse stock repository scoped to the current transaction.
func (r *gormTxRepositories) StockRepo() warehouse.StockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

// TransferRepo returns the van transfer repository scoped to the current transaction.
func (r *gormTxRepositories) TransferRepo() warehouse.VanTransferRepository {
	return NewGormVanTransferRepository(r.tx)
}

// OnHandRepo returns the on-hand repository scoped to the current transaction.
func (r *gormTxRepositories) OnHandRepo() location.OnHandRepository {
	return NewGormOnHandRepository(r.tx)
}

// OutwardRepo returns the outward repository scoped to the current transaction.
func (r *gormTxRepositories) OutwardRepo() location.OutwardRepository {
	return NewGormOutwardRepository(r.tx)
}

// RouteRepo returns the route repository scoped to the current transaction.
func (r *gormTxRepositories) RouteRepo() delivery.RouteRepository {
	return NewGormRouteRepository(r.tx)
}

// StopRepo returns the route stop repository scoped to the current transaction.
func (r *gormTxRepositories) StopRepo() delivery.RouteStopRepository {
	return NewGormRouteStopRepository(r.tx)
}

// RestockRepo returns the restock request repository scoped to the current transaction.
func (r *gormTxRepositories) RestockRepo() delivery.RestockRequestRepository {
	return NewGormRestockRequestRepository(r.tx)
}

// FollowupRepo returns the follow-up request repository scoped to the current transaction.
func (r *gormTxRepositories) FollowupRepo() delivery.FollowupRequestRepository {
	return NewGormFollowupRequestRepository(r.tx)
}

func runInTx(ctx context.Context, db *gorm.DB, fn func(repos *gormTxRepositories) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

// WarehouseTransactionScope implements the warehouse TransactionScope using GORM transactions.
type WarehouseTransactionScope struct {
	db *gorm.DB
}

// NewWarehouseTransactionScope creates a new WarehouseTransactionScope
func NewWarehouseTransactionScope(db *gorm.DB) *WarehouseTransactionScope {
	return &WarehouseTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *WarehouseTransactionScope) Execute(ctx context.Context, fn func(repos appwarehouse.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(repos *gormTxRepositories) error { return fn(repos) })
}

// LocationTransactionScope implements the location TransactionScope using GORM transactions.
type LocationTransactionScope struct {
	db *gorm.DB
}

// NewLocationTransactionScope creates a new LocationTransactionScope
func NewLocationTransactionScope(db *gorm.DB) *LocationTransactionScope {
	return &LocationTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *LocationTransactionScope) Execute(ctx context.Context, fn func(repos applocation.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(repos *gormTxRepositories) error { return fn(repos) })
}

// DeliveryTransactionScope implements the delivery TransactionScope using GORM transactions.
type DeliveryTransactionScope struct {
	db *gorm.DB
}

// NewDeliveryTransactionScope creates a new DeliveryTransactionScope
func NewDeliveryTransactionScope(db *gorm.DB) *DeliveryTransactionScope {
	return &DeliveryTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *DeliveryTransactionScope) Execute(ctx context.Context, fn func(repos appdelivery.TransactionalRepositories) error) error {
	return runInTx(ctx, s.db, func(repos *gormTxRepositories) error { return fn(repos) })
}

var (
	_ appwarehouse.TransactionScope = (*WarehouseTransactionScope)(nil)
	_ applocation.TransactionScope  = (*LocationTransactionScope)(nil)
	_ appdelivery.TransactionScope  = (*DeliveryTransactionScope)(nil)

	_ appwarehouse.TransactionalRepositories = (*gormTxRepositories)(nil)
	_ applocation.TransactionalRepositories  = (*gormTxRepositories)(nil)
	_ appdelivery.TransactionalRepositories  = (*gormTxRepositories)(nil)
)
