package delivery

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
)

// TransactionScope provides transactional access to the repositories a stop update touches.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one transaction
type TransactionalRepositories interface {
	RouteRepo() delivery.RouteRepository
	StopRepo() delivery.RouteStopRepository
	RestockRepo() delivery.RestockRequestRepository
	FollowupRepo() delivery.FollowupRequestRepository
	OnHandRepo() location.OnHandRepository
}

// Repositories groups the non-transactional repositories, used by NoOpTransactionScope
type Repositories struct {
	Routes    delivery.RouteRepository
	Stops     delivery.RouteStopRepository
	Restocks  delivery.RestockRequestRepository
	Followups delivery.FollowupRequestRepository
	OnHand    location.OnHandRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) RouteRepo() delivery.RouteRepository { return s.repos.Routes }

func (s *NoOpTransactionScope) StopRepo() delivery.RouteStopRepository { return s.repos.Stops }

func (s *NoOpTransactionScope) RestockRepo() delivery.RestockRequestRepository {
	return s.repos.Restocks
}

func (s *NoOpTransactionScope) FollowupRepo() delivery.FollowupRequestRepository {
	return s.repos.Followups
}

func (s *NoOpTransactionScope) OnHandRepo() location.OnHandRepository { return s.repos.OnHand }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
