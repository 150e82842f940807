package delivery

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RouteStopService drives stops through their delivery statuses and keeps
// the linked requests and the location's on-hand stock in step.
type RouteStopService struct {
	stopRepo       delivery.RouteStopRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewRouteStopService creates a new RouteStopService
func NewRouteStopService(stopRepo delivery.RouteStopRepository, txScope TransactionScope) *RouteStopService {
	return &RouteStopService{
		stopRepo: stopRepo,
		txScope:  txScope,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RouteStopService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *RouteStopService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// UpdateStopStatus moves a stop to a new status. In one transaction it
// starts the parent route if needed, checks the delivery OTP on hand-over,
// projects the status onto the linked requests and, the first time a linked
// restock request becomes Delivered, adds its items to the stop location's
// on-hand stock.
func (s *RouteStopService) UpdateStopStatus(ctx context.Context, tenantID, stopID, userID uuid.UUID, req UpdateStopStatusRequest) (_ *RouteStopResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "route_stop", "update_status",
		telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID),
		telemetry.UUIDAttr(telemetry.SpanAttrStopID, stopID),
		telemetry.SpanAttrStatus.String(req.Status),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	status, err := delivery.ParseStopStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var stop *delivery.RouteStop
	var events []shared.DomainEvent
	now := s.now()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		events = events[:0]

		var err error
		stop, err = repos.StopRepo().FindByIDForTenant(ctx, tenantID, stopID)
		if err != nil {
			return err
		}
		route, err := repos.RouteRepo().FindByIDForTenant(ctx, tenantID, stop.RouteID)
		if err != nil {
			return err
		}

		if err := stop.ChangeStatus(status, req.DeliveryOTP, now, userID); err != nil {
			return err
		}
		if route.Start(userID) {
			if err := repos.RouteRepo().SaveWithLock(ctx, route); err != nil {
				return err
			}
			events = append(events, route.GetDomainEvents()...)
		}
		if err := repos.StopRepo().SaveWithLock(ctx, stop); err != nil {
			return err
		}
		events = append(events, stop.GetDomainEvents()...)

		if stop.RestockRequestID != nil {
			restockEvents, err := s.applyToRestock(ctx, repos, tenantID, route, stop, now, userID)
			if err != nil {
				return err
			}
			events = append(events, restockEvents...)
		}
		if stop.FollowupRequestID != nil {
			followup, err := repos.FollowupRepo().FindByIDForTenant(ctx, tenantID, *stop.FollowupRequestID)
			if err != nil {
				return err
			}
			if followup.ApplyStopStatus(status, userID) {
				if err := repos.FollowupRepo().SaveWithLock(ctx, followup); err != nil {
					return err
				}
				events = append(events, followup.GetDomainEvents()...)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("route stop update rejected",
			zap.String("tenant_id", tenantID.String()),
			zap.String("stop_id", stopID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("route stop status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("stop_id", stop.ID.String()),
		zap.String("route_id", stop.RouteID.String()),
		zap.String("status", string(stop.Status)),
	)
	if s.eventPublisher != nil && len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	stop.ClearDomainEvents()

	resp := ToRouteStopResponse(stop)
	return &resp, nil
}

func (s *RouteStopService) applyToRestock(
	ctx context.Context,
	repos TransactionalRepositories,
	tenantID uuid.UUID,
	route *delivery.Route,
	stop *delivery.RouteStop,
	now time.Time,
	userID uuid.UUID,
) ([]shared.DomainEvent, error) {
	restock, err := repos.RestockRepo().FindByIDForTenant(ctx, tenantID, *stop.RestockRequestID)
	if err != nil {
		return nil, err
	}

	changed := restock.ApplyStopStatus(stop.Status, userID)
	var events []shared.DomainEvent

	if restock.NeedsMaterialization() {
		for _, item := range restock.Items {
			target, err := location.NewOnHandEntry(tenantID, stop.LocationID, item.ProductID, ledger.VariantPtr(item.VariantID), "", 0, route.DriverID)
			if err != nil {
				return nil, err
			}
			stored, err := repos.OnHandRepo().AddOrCreate(ctx, target, item.Quantity)
			if err != nil {
				return nil, err
			}
			events = append(events, location.NewOnHandMaterializedEvent(stored, item.Quantity, stop.ID))
		}
		restock.MarkMaterialized(now)
		if !changed {
			restock.Touch(userID)
			changed = true
		}
		s.logger.Info("restock materialized",
			zap.String("tenant_id", tenantID.String()),
			zap.String("restock_request_id", restock.ID.String()),
			zap.String("location_id", stop.LocationID.String()),
			zap.Int("items", len(restock.Items)),
		)
	}

	if changed {
		if err := repos.RestockRepo().SaveWithLock(ctx, restock); err != nil {
			return nil, err
		}
	}
	return append(restock.GetDomainEvents(), events...), nil
}

// VerifyOTP checks a delivery passcode without changing the stop
func (s *RouteStopService) VerifyOTP(ctx context.Context, tenantID, stopID uuid.UUID, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	stop, err := s.stopRepo.FindByIDForTenant(ctx, tenantID, stopID)
	if err != nil {
		return nil, err
	}
	if err := stop.VerifyOTP(req.OTP); err != nil {
		return nil, err
	}
	return &VerifyOTPResponse{Message: "OTP verified successfully", IsValid: true}, nil
}
