package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrOptimizerNotConfigured is returned when no optimization provider is set up
	ErrOptimizerNotConfigured = errors.New("route optimizer: provider not configured")
	// ErrOptimizerUnavailable is returned when the provider cannot be reached
	ErrOptimizerUnavailable = errors.New("route optimizer: provider unavailable")
	// ErrOptimizerInvalidResponse is returned when the provider answer cannot be used
	ErrOptimizerInvalidResponse = errors.New("route optimizer: invalid provider response")
)

// OptimizeStop is what the provider is told about one stop
type OptimizeStop struct {
	StopID     uuid.UUID `json:"stopId"`
	StopOrder  int       `json:"stopOrder"`
	LocationID uuid.UUID `json:"locationId"`
	Address    string    `json:"address"`
}

// OptimizeResult is the provider's proposed stop sequence
type OptimizeResult struct {
	StopIDs  []uuid.UUID `json:"stopIds"`
	DriverID *uuid.UUID  `json:"driverId,omitempty"`
}

// RouteOptimizer is the external route optimization provider
type RouteOptimizer interface {
	// OptimizeRoute returns the stops of a route in their optimized order
	OptimizeRoute(ctx context.Context, routeID uuid.UUID, stops []OptimizeStop) (*OptimizeResult, error)
}

// OptimizeStopsOf lists a route's stops in their current order for the provider
func OptimizeStopsOf(r *Route) []OptimizeStop {
	r.SortStops()
	out := make([]OptimizeStop, 0, len(r.Stops))
	for _, s := range r.Stops {
		out = append(out, OptimizeStop{StopID: s.ID, StopOrder: s.StopOrder, LocationID: s.LocationID, Address: s.Address})
	}
	return out
}
