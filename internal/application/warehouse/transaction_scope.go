package warehouse

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
)

// TransactionScope provides transactional access to warehouse repositories.
// All repository operations inside Execute are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the warehouse repositories bound to one transaction
type TransactionalRepositories interface {
	StockRepo() warehouse.StockRepository
	TransferRepo() warehouse.VanTransferRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests with in-memory repositories.
type NoOpTransactionScope struct {
	stockRepo    warehouse.StockRepository
	transferRepo warehouse.VanTransferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(stockRepo warehouse.StockRepository, transferRepo warehouse.VanTransferRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{stockRepo: stockRepo, transferRepo: transferRepo}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock repository
func (s *NoOpTransactionScope) StockRepo() warehouse.StockRepository {
	return s.stockRepo
}

// TransferRepo returns the van transfer repository
func (s *NoOpTransactionScope) TransferRepo() warehouse.VanTransferRepository {
	return s.transferRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
