package delivery

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types
const (
	EventTypeRouteStarted           = "RouteStarted"
	EventTypeRouteStopStatusChanged = "RouteStopStatusChanged"
	EventTypeRequestStatusChanged   = "RequestStatusChanged"
)

// RouteStartedEvent is raised the first time any stop of a route changes status
type RouteStartedEvent struct {
	shared.BaseDomainEvent
	DriverID uuid.UUID `json:"driver_id"`
}

// NewRouteStartedEvent creates a RouteStartedEvent
func NewRouteStartedEvent(r *Route) *RouteStartedEvent {
	return &RouteStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRouteStarted, AggregateTypeRoute, r.ID, r.TenantID),
		DriverID:        r.DriverID,
	}
}

// RouteStopStatusChangedEvent is raised on every stop status update
type RouteStopStatusChangedEvent struct {
	shared.BaseDomainEvent
	RouteID uuid.UUID  `json:"route_id"`
	From    StopStatus `json:"from"`
	To      StopStatus `json:"to"`
}

// NewRouteStopStatusChangedEvent creates a RouteStopStatusChangedEvent
func NewRouteStopStatusChangedEvent(s *RouteStop, from StopStatus) *RouteStopStatusChangedEvent {
	return &RouteStopStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRouteStopStatusChanged, AggregateTypeRouteStop, s.ID, s.TenantID),
		RouteID:         s.RouteID,
		From:            from,
		To:              s.Status,
	}
}

// RequestStatusChangedEvent is raised when a stop update moves a linked request
type RequestStatusChangedEvent struct {
	shared.BaseDomainEvent
	From RequestStatus `json:"from"`
	To   RequestStatus `json:"to"`
}

// NewRequestStatusChangedEvent creates a RequestStatusChangedEvent
func NewRequestStatusChangedEvent(aggType string, id, tenantID uuid.UUID, from, to RequestStatus) *RequestStatusChangedEvent {
	return &RequestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestStatusChanged, aggType, id, tenantID),
		From:            from,
		To:              to,
	}
}
