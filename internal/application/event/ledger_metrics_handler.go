package event

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementRecorder receives ledger counters. telemetry.LedgerMetrics implements it.
type MovementRecorder interface {
	RecordMovement(ctx context.Context, tenantID uuid.UUID, pool, direction string, units int64)
	RecordStopTransition(ctx context.Context, tenantID uuid.UUID, status string)
}

// LedgerMetricsHandler turns ledger movements and stop transitions into counters
type LedgerMetricsHandler struct {
	recorder MovementRecorder
}

// NewLedgerMetricsHandler creates a LedgerMetricsHandler
func NewLedgerMetricsHandler(recorder MovementRecorder) *LedgerMetricsHandler {
	return &LedgerMetricsHandler{recorder: recorder}
}

// EventTypes returns nil; movements are recognised by interface, not by type name
func (h *LedgerMetricsHandler) EventTypes() []string {
	return nil
}

// Handle records each movement carried by event
func (h *LedgerMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if e, ok := event.(*delivery.RouteStopStatusChangedEvent); ok {
		h.recorder.RecordStopTransition(ctx, e.TenantID(), string(e.To))
	}

	m, ok := event.(shared.LedgerMovement)
	if !ok {
		return nil
	}
	for _, move := range m.Movements() {
		if move.Units <= 0 {
			continue
		}
		h.recorder.RecordMovement(ctx, event.TenantID(), move.Pool, move.Direction, move.Units)
	}
	return nil
}

var _ shared.EventHandler = (*LedgerMetricsHandler)(nil)
