package event

import (
	"errors"
	"fmt"
	"sync"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
)

// Stream groups the event types raised by one ledger area
type Stream string

const (
	StreamWarehouse Stream = "warehouse"
	StreamLocation  Stream = "location"
	StreamDelivery  Stream = "delivery"
)

// ErrUnknownEventType is returned when subscribing to a type no ledger raises
var ErrUnknownEventType = errors.New("unknown event type")

var streamEventTypes = map[Stream][]string{
	StreamWarehouse: {
		warehouse.EventTypeStockReceived,
		warehouse.EventTypeVanTransferCreated,
		warehouse.EventTypeVanTransferStatusChanged,
	},
	StreamLocation: {
		location.EventTypeOnHandAdjusted,
		location.EventTypeOnHandMaterialized,
		location.EventTypeOutwardRecorded,
		location.EventTypeOutwardRemoved,
		location.EventTypeUnlistedRecorded,
		location.EventTypeUnlistedDeleted,
	},
	StreamDelivery: {
		delivery.EventTypeRouteStarted,
		delivery.EventTypeRouteStopStatusChanged,
		delivery.EventTypeRequestStatusChanged,
	},
}

var eventTypeStream = func() map[string]Stream {
	m := make(map[string]Stream)
	for stream, types := range streamEventTypes {
		for _, t := range types {
			m[t] = stream
		}
	}
	return m
}()

// EventTypes returns the event types of the stream
func (s Stream) EventTypes() []string {
	return append([]string(nil), streamEventTypes[s]...)
}

// StreamOf returns the stream that raises eventType
func StreamOf(eventType string) (Stream, bool) {
	s, ok := eventTypeStream[eventType]
	return s, ok
}

// HandlerRegistry maps ledger event types to their handlers. Only event types
// raised by the warehouse, location or delivery ledgers can be subscribed to,
// so a misspelt type fails at wiring time instead of silently never firing.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	wildcard []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]shared.EventHandler)}
}

// Register subscribes handler to eventTypes, or to every event when none are
// given. Nothing is registered if any type is unknown.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) error {
	for _, eventType := range eventTypes {
		if _, ok := eventTypeStream[eventType]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, handler)
		return nil
	}
	for _, eventType := range eventTypes {
		if !containsHandler(r.handlers[eventType], handler) {
			r.handlers[eventType] = append(r.handlers[eventType], handler)
		}
	}
	return nil
}

// RegisterStream subscribes handler to every event type of the given streams
func (r *HandlerRegistry) RegisterStream(handler shared.EventHandler, streams ...Stream) error {
	var eventTypes []string
	for _, s := range streams {
		types, ok := streamEventTypes[s]
		if !ok {
			return fmt.Errorf("unknown event stream %q", s)
		}
		eventTypes = append(eventTypes, types...)
	}
	if len(eventTypes) == 0 {
		return errors.New("no event stream given")
	}
	return r.Register(handler, eventTypes...)
}

// Unregister removes handler from every event type
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeHandler(r.wildcard, handler)
	for eventType, handlers := range r.handlers {
		if remaining := removeHandler(handlers, handler); len(remaining) > 0 {
			r.handlers[eventType] = remaining
		} else {
			delete(r.handlers, eventType)
		}
	}
}

// GetHandlers returns the handlers for eventType followed by the wildcard handlers
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeHandlers := r.handlers[eventType]
	result := make([]shared.EventHandler, 0, len(typeHandlers)+len(r.wildcard))
	result = append(result, typeHandlers...)
	return append(result, r.wildcard...)
}

// Coverage returns, per stream, how many handlers receive each of its event
// types. Wildcard handlers count towards every type.
func (r *HandlerRegistry) Coverage() map[Stream]map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coverage := make(map[Stream]map[string]int, len(streamEventTypes))
	for stream, types := range streamEventTypes {
		counts := make(map[string]int, len(types))
		for _, t := range types {
			counts[t] = len(r.handlers[t]) + len(r.wildcard)
		}
		coverage[stream] = counts
	}
	return coverage
}

// HandlerCount returns the number of distinct registered handlers
func (r *HandlerRegistry) HandlerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]struct{})
	for _, h := range r.wildcard {
		seen[h] = struct{}{}
	}
	for _, handlers := range r.handlers {
		for _, h := range handlers {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}

func containsHandler(handlers []shared.EventHandler, target shared.EventHandler) bool {
	for _, h := range handlers {
		if h == target {
			return true
		}
	}
	return false
}

func removeHandler(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	result := make([]shared.EventHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != target {
			result = append(result, h)
		}
	}
	return result
}
