package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for service spans
const TracerName = "fieldstock"

// Span attribute keys set by the application services
const (
	SpanAttrTenantID   = attribute.Key("tenant_id")
	SpanAttrLocationID = attribute.Key("location_id")
	SpanAttrTransferID = attribute.Key("transfer_id")
	SpanAttrRouteID    = attribute.Key("route_id")
	SpanAttrStopID     = attribute.Key("stop_id")
	SpanAttrEntryID    = attribute.Key("entry_id")
	SpanAttrStatus     = attribute.Key("status")
	SpanAttrQuantity   = attribute.Key("quantity")
	SpanAttrMode       = attribute.Key("mode")
)

// UUIDAttr renders an id attribute
func UUIDAttr(key attribute.Key, id uuid.UUID) attribute.KeyValue {
	return key.String(id.String())
}

// StartServiceSpan starts an internal span named "<service>.<method>" on the
// global tracer. The caller must end it, usually with EndSpan.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "van_transfer", "create",
//	    telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID))
//	defer func() { telemetry.EndSpan(span, err) }()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks the span failed. A nil error or span is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EndSpan records err when non-nil, otherwise marks the span OK, and ends it
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
