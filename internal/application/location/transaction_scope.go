package location

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
)

// TransactionScope provides transactional access to location repositories.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the location repositories bound to one transaction
type TransactionalRepositories interface {
	OnHandRepo() location.OnHandRepository
	OutwardRepo() location.OutwardRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	onHandRepo  location.OnHandRepository
	outwardRepo location.OutwardRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(onHandRepo location.OnHandRepository, outwardRepo location.OutwardRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{onHandRepo: onHandRepo, outwardRepo: outwardRepo}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OnHandRepo returns the on-hand repository
func (s *NoOpTransactionScope) OnHandRepo() location.OnHandRepository {
	return s.onHandRepo
}

// OutwardRepo returns the outward repository
func (s *NoOpTransactionScope) OutwardRepo() location.OutwardRepository {
	return s.outwardRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
