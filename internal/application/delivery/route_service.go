package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RouteService plans routes and reorders them through the optimization provider
type RouteService struct {
	routeRepo    delivery.RouteRepository
	restockRepo  delivery.RestockRequestRepository
	followupRepo delivery.FollowupRequestRepository
	directory    reference.Directory
	txScope      TransactionScope
	optimizer    delivery.RouteOptimizer
	logger       *zap.Logger
}

// NewRouteService creates a new RouteService
func NewRouteService(
	routeRepo delivery.RouteRepository,
	restockRepo delivery.RestockRequestRepository,
	followupRepo delivery.FollowupRequestRepository,
	directory reference.Directory,
	txScope TransactionScope,
) *RouteService {
	return &RouteService{
		routeRepo:    routeRepo,
		restockRepo:  restockRepo,
		followupRepo: followupRepo,
		directory:    directory,
		txScope:      txScope,
		logger:       zap.NewNop(),
	}
}

// SetOptimizer sets the route optimization provider
func (s *RouteService) SetOptimizer(optimizer delivery.RouteOptimizer) {
	s.optimizer = optimizer
}

// SetLogger sets the service logger
func (s *RouteService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateRoute plans a route. Stops keep the order they were given in.
func (s *RouteService) CreateRoute(ctx context.Context, tenantID, userID uuid.UUID, req CreateRouteRequest) (*CreatedRouteResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindUser, ID: req.DriverID}); err != nil {
		return nil, err
	}

	plans := make([]delivery.StopPlan, 0, len(req.Stops))
	for i, stop := range req.Stops {
		checks := []reference.Check{{Kind: reference.KindLocation, ID: stop.LocationID}}
		if stop.CustomerID != nil {
			checks = append(checks, reference.Check{Kind: reference.KindCustomer, ID: *stop.CustomerID})
		}
		if err := reference.Require(ctx, s.directory, tenantID, checks...); err != nil {
			return nil, err
		}
		if stop.RestockRequestID != nil {
			if _, err := s.restockRepo.FindByIDForTenant(ctx, tenantID, *stop.RestockRequestID); err != nil {
				return nil, linkError(err, i, "restock request", *stop.RestockRequestID)
			}
		}
		if stop.FollowupRequestID != nil {
			if _, err := s.followupRepo.FindByIDForTenant(ctx, tenantID, *stop.FollowupRequestID); err != nil {
				return nil, linkError(err, i, "follow-up request", *stop.FollowupRequestID)
			}
		}
		plans = append(plans, delivery.StopPlan{
			LocationID:        stop.LocationID,
			CustomerID:        stop.CustomerID,
			Address:           stop.Address,
			RestockRequestID:  stop.RestockRequestID,
			FollowupRequestID: stop.FollowupRequestID,
			DeliveryOTP:       stop.DeliveryOTP,
			RequireOTP:        stop.RequireOTP,
		})
	}

	route, err := delivery.NewRoute(tenantID, req.DriverID, req.DeliveryDate, plans, userID)
	if err != nil {
		return nil, err
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}

	s.logger.Info("route created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("route_id", route.ID.String()),
		zap.String("driver_id", route.DriverID.String()),
		zap.Int("stops", len(route.Stops)),
	)

	resp := CreatedRouteResponse{RouteResponse: ToRouteResponse(route)}
	for _, stop := range route.Stops {
		if stop.RequiresOTP() {
			if resp.DeliveryOTPs == nil {
				resp.DeliveryOTPs = make(map[uuid.UUID]string)
			}
			resp.DeliveryOTPs[stop.ID] = stop.DeliveryOTP
		}
	}
	return &resp, nil
}

func linkError(err error, index int, what string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainErrorf(reference.CodeValidation, "Stop %d: invalid %s %s", index+1, what, id)
	}
	return err
}

// GetRoute returns a route with its stops in stop order
func (s *RouteService) GetRoute(ctx context.Context, tenantID, id uuid.UUID) (*RouteResponse, error) {
	route, err := s.routeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToRouteResponse(route)
	return &resp, nil
}

// ListRoutes returns a page of routes, optionally for one driver or day
func (s *RouteService) ListRoutes(ctx context.Context, tenantID uuid.UUID, filter RouteListFilter) ([]RouteResponse, int64, error) {
	f := delivery.RouteFilter{
		Filter:       shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "delivery_date", OrderDir: "desc"}.Normalize(),
		DriverID:     filter.DriverID,
		DeliveryDate: filter.DeliveryDate,
	}
	routes, total, err := s.routeRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RouteResponse, 0, len(routes))
	for i := range routes {
		out = append(out, ToRouteResponse(&routes[i]))
	}
	return out, total, nil
}

// OptimizeRoute asks the provider for a better stop order and stores it.
// Only routes that have not started can be optimized.
func (s *RouteService) OptimizeRoute(ctx context.Context, tenantID, id, userID uuid.UUID) (_ *RouteResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "route", "optimize",
		telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID),
		telemetry.UUIDAttr(telemetry.SpanAttrRouteID, id),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if s.optimizer == nil {
		return nil, delivery.ErrOptimizerNotConfigured
	}

	route, err := s.routeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if route.Status != delivery.RouteStatusNotStarted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only routes that have not started can be optimized")
	}

	result, err := s.optimizer.OptimizeRoute(ctx, route.ID, delivery.OptimizeStopsOf(route))
	if err != nil {
		return nil, fmt.Errorf("optimize route %s: %w", route.ID, err)
	}
	if err := route.Reorder(result.StopIDs, result.DriverID, userID); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RouteRepo().SaveWithLock(ctx, route); err != nil {
			return err
		}
		return repos.RouteRepo().SaveStopOrder(ctx, route)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("route optimized",
		zap.String("tenant_id", tenantID.String()),
		zap.String("route_id", route.ID.String()),
		zap.String("driver_id", route.DriverID.String()),
	)
	resp := ToRouteResponse(route)
	return &resp, nil
}
