// Package routing is the HTTP client for the external route optimization provider.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// maxResponseSize caps how much of a provider response is read (1MB)
const maxResponseSize = 1 << 20

const optimizePath = "/v1/routes/optimize"

// optimizeRequest is the provider request body
type optimizeRequest struct {
	RouteID uuid.UUID               `json:"routeId"`
	Stops   []delivery.OptimizeStop `json:"stops"`
}

// Client implements delivery.RouteOptimizer over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a provider client from the routing config section.
// An empty base URL means no provider is configured.
func NewClient(cfg config.RoutingConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, delivery.ErrOptimizerNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// OptimizeRoute posts the stops in their current order and returns the
// provider's sequence. The result must be a permutation of the given stops.
func (c *Client) OptimizeRoute(ctx context.Context, routeID uuid.UUID, stops []delivery.OptimizeStop) (*delivery.OptimizeResult, error) {
	body, err := json.Marshal(optimizeRequest{RouteID: routeID, Stops: stops})
	if err != nil {
		return nil, fmt.Errorf("routing: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+optimizePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("routing: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Route optimizer unreachable", zap.String("route_id", routeID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", delivery.ErrOptimizerUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", delivery.ErrOptimizerUnavailable, err)
	}
	c.logger.Debug("Route optimizer responded",
		zap.String("route_id", routeID.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", delivery.ErrOptimizerUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", delivery.ErrOptimizerInvalidResponse, resp.StatusCode)
	}

	var result delivery.OptimizeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", delivery.ErrOptimizerInvalidResponse, err)
	}
	if err := checkPermutation(stops, result.StopIDs); err != nil {
		return nil, err
	}
	return &result, nil
}

func checkPermutation(stops []delivery.OptimizeStop, ids []uuid.UUID) error {
	if len(ids) != len(stops) {
		return fmt.Errorf("%w: got %d stops, sent %d", delivery.ErrOptimizerInvalidResponse, len(ids), len(stops))
	}
	sent := make(map[uuid.UUID]bool, len(stops))
	for _, s := range stops {
		sent[s.StopID] = true
	}
	for _, id := range ids {
		if !sent[id] {
			return fmt.Errorf("%w: unknown or repeated stop %s", delivery.ErrOptimizerInvalidResponse, id)
		}
		delete(sent, id)
	}
	return nil
}

var _ delivery.RouteOptimizer = (*Client)(nil)
