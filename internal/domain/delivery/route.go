package delivery

import (
	"sort"
	"strings"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate types
const (
	AggregateTypeRoute     = "Route"
	AggregateTypeRouteStop = "RouteStop"
)

// Route is a driver's delivery run for one day
type Route struct {
	shared.TenantAggregateRoot
	DriverID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	DeliveryDate time.Time   `gorm:"type:date;not null;index"`
	Status       RouteStatus `gorm:"type:varchar(30);not null;default:'Not Started'"`
	Stops        []RouteStop `gorm:"foreignKey:RouteID;references:ID"`
}

// TableName returns the table name for GORM
func (Route) TableName() string {
	return "routes"
}

// StopPlan describes one stop when a route is created
type StopPlan struct {
	LocationID        uuid.UUID
	CustomerID        *uuid.UUID
	Address           string
	RestockRequestID  *uuid.UUID
	FollowupRequestID *uuid.UUID
	DeliveryOTP       string
	RequireOTP        bool
}

// NewRoute creates a route whose stops are ordered as given, starting at 1.
// A stop that requires an OTP but has none supplied gets a generated one.
func NewRoute(tenantID, driverID uuid.UUID, deliveryDate time.Time, plans []StopPlan, createdBy uuid.UUID) (*Route, error) {
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}
	if len(plans) == 0 {
		return nil, shared.NewDomainError("EMPTY_ROUTE", "A route needs at least one stop")
	}

	route := &Route{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		DriverID:            driverID,
		DeliveryDate:        deliveryDate,
		Status:              RouteStatusNotStarted,
	}
	for i, plan := range plans {
		if plan.LocationID == uuid.Nil {
			return nil, shared.NewDomainErrorf("INVALID_LOCATION", "Stop %d has no location", i+1)
		}
		otp := strings.TrimSpace(plan.DeliveryOTP)
		if otp == "" && plan.RequireOTP {
			generated, err := GenerateOTP()
			if err != nil {
				return nil, err
			}
			otp = generated
		}
		stop := RouteStop{
			TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
			RouteID:             route.ID,
			StopOrder:           i + 1,
			LocationID:          plan.LocationID,
			CustomerID:          plan.CustomerID,
			Address:             plan.Address,
			Status:              StopStatusPending,
			DeliveryOTP:         otp,
			RestockRequestID:    plan.RestockRequestID,
			FollowupRequestID:   plan.FollowupRequestID,
		}
		route.Stops = append(route.Stops, stop)
	}
	return route, nil
}

// Start moves a route that has not started yet into progress.
// Returns true if the status changed.
func (r *Route) Start(userID uuid.UUID) bool {
	if r.Status != RouteStatusNotStarted {
		return false
	}
	r.Status = RouteStatusInProgress
	r.Touch(userID)
	r.AddDomainEvent(NewRouteStartedEvent(r))
	return true
}

// SortStops orders the loaded stops by StopOrder
func (r *Route) SortStops() {
	sort.SliceStable(r.Stops, func(i, j int) bool {
		return r.Stops[i].StopOrder < r.Stops[j].StopOrder
	})
}

// Reorder assigns new stop orders from an optimized sequence of stop ids and
// optionally reassigns the driver. The sequence must contain every stop exactly once.
func (r *Route) Reorder(sequence []uuid.UUID, driverID *uuid.UUID, userID uuid.UUID) error {
	if r.Status != RouteStatusNotStarted {
		return shared.NewDomainError("INVALID_STATE", "Only routes that have not started can be reordered")
	}
	if len(sequence) != len(r.Stops) {
		return shared.NewDomainErrorf("INVALID_SEQUENCE", "Expected %d stops in sequence, got %d", len(r.Stops), len(sequence))
	}

	position := make(map[uuid.UUID]int, len(sequence))
	for i, id := range sequence {
		if _, dup := position[id]; dup {
			return shared.NewDomainErrorf("INVALID_SEQUENCE", "Stop %s appears twice", id)
		}
		position[id] = i + 1
	}
	for i := range r.Stops {
		if _, ok := position[r.Stops[i].ID]; !ok {
			return shared.NewDomainErrorf("INVALID_SEQUENCE", "Stop %s is missing from sequence", r.Stops[i].ID)
		}
	}
	for i := range r.Stops {
		r.Stops[i].StopOrder = position[r.Stops[i].ID]
	}
	if driverID != nil && *driverID != uuid.Nil {
		r.DriverID = *driverID
	}
	r.SortStops()
	r.Touch(userID)
	return nil
}
