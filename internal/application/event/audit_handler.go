// Package event holds the subscribers of the ledger domain events.
package event

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AuditHandler writes every published domain event to the audit log
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates an AuditHandler. The logger is usually named "audit".
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// EventTypes returns nil: the audit log receives all events
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// Handle logs the event with its ledger movements, if any
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}
	if m, ok := event.(shared.LedgerMovement); ok {
		if moves := m.Movements(); len(moves) > 0 {
			fields = append(fields, zap.Array("movements", movementList(moves)))
		}
	}

	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	h.logger.Info("Domain event", fields...)
	return nil
}

type movementList []shared.Movement

func (l movementList) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, m := range l {
		if err := enc.AppendObject(movementObject(m)); err != nil {
			return err
		}
	}
	return nil
}

type movementObject shared.Movement

func (m movementObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("pool", m.Pool)
	enc.AddString("direction", m.Direction)
	enc.AddInt64("units", m.Units)
	return nil
}

var _ shared.EventHandler = (*AuditHandler)(nil)
