package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStops() []delivery.OptimizeStop {
	return []delivery.OptimizeStop{
		{StopID: uuid.New(), StopOrder: 1, LocationID: uuid.New(), Address: "1 First St"},
		{StopID: uuid.New(), StopOrder: 2, LocationID: uuid.New(), Address: "2 Second St"},
		{StopID: uuid.New(), StopOrder: 3, LocationID: uuid.New(), Address: "3 Third St"},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(config.RoutingConfig{BaseURL: server.URL + "/", APIKey: "key-1", Timeout: time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.RoutingConfig{}, nil)
	assert.ErrorIs(t, err, delivery.ErrOptimizerNotConfigured)
}

func TestClient_OptimizeRoute(t *testing.T) {
	stops := threeStops()
	routeID := uuid.New()
	driverID := uuid.New()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, optimizePath, r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var req optimizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, routeID, req.RouteID)
		require.Len(t, req.Stops, 3)
		assert.Equal(t, "1 First St", req.Stops[0].Address)

		_ = json.NewEncoder(w).Encode(delivery.OptimizeResult{
			StopIDs:  []uuid.UUID{req.Stops[2].StopID, req.Stops[0].StopID, req.Stops[1].StopID},
			DriverID: &driverID,
		})
	})

	result, err := c.OptimizeRoute(context.Background(), routeID, stops)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{stops[2].StopID, stops[0].StopID, stops[1].StopID}, result.StopIDs)
	require.NotNil(t, result.DriverID)
	assert.Equal(t, driverID, *result.DriverID)
}

func TestClient_OptimizeRoute_Errors(t *testing.T) {
	stops := threeStops()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			want:    delivery.ErrOptimizerUnavailable,
		},
		{
			name:    "rejected request",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusUnprocessableEntity) },
			want:    delivery.ErrOptimizerInvalidResponse,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("{")) },
			want:    delivery.ErrOptimizerInvalidResponse,
		},
		{
			name: "missing stop",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(delivery.OptimizeResult{StopIDs: []uuid.UUID{stops[0].StopID, stops[1].StopID}})
			},
			want: delivery.ErrOptimizerInvalidResponse,
		},
		{
			name: "repeated stop",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(delivery.OptimizeResult{StopIDs: []uuid.UUID{stops[0].StopID, stops[0].StopID, stops[1].StopID}})
			},
			want: delivery.ErrOptimizerInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.OptimizeRoute(context.Background(), uuid.New(), stops)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_OptimizeRoute_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(config.RoutingConfig{BaseURL: url, Timeout: time.Second}, nil)
	require.NoError(t, err)

	_, err = c.OptimizeRoute(context.Background(), uuid.New(), threeStops())
	assert.ErrorIs(t, err, delivery.ErrOptimizerUnavailable)
}
