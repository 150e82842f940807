// Package event provides the in-process event bus that fans committed
// ledger events out to subscribers.
package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with in-memory pub/sub.
// Handlers run synchronously on the publisher's goroutine; a failing or
// panicking handler is logged and never fails the publish.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
	inflight sync.WaitGroup
	failures atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all registered handlers in registration order
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.inflight.Add(1)
	defer b.inflight.Done()

	for _, event := range events {
		if event == nil {
			continue
		}
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatchToHandler(ctx, handler, event); err != nil {
				b.failures.Add(1)
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("aggregate_id", event.AggregateID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types. A subscription
// naming an event type no ledger raises is rejected and logged.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if err := b.registry.Register(handler, eventTypes...); err != nil {
		b.logger.Error("handler subscription rejected", zap.Strings("event_types", eventTypes), zap.Error(err))
		return
	}
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// SubscribeStream registers a handler for every event type of the streams
func (b *InMemoryEventBus) SubscribeStream(handler shared.EventHandler, streams ...Stream) error {
	if err := b.registry.RegisterStream(handler, streams...); err != nil {
		return err
	}
	b.logger.Debug("handler subscribed to streams", zap.Any("streams", streams))
	return nil
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start starts the event bus
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	var unhandled []string
	for _, counts := range b.registry.Coverage() {
		for eventType, n := range counts {
			if n == 0 {
				unhandled = append(unhandled, eventType)
			}
		}
	}
	b.logger.Info("event bus started",
		zap.Int("handlers", b.registry.HandlerCount()),
		zap.Strings("unhandled_event_types", unhandled),
	)
	return nil
}

// Stop waits for in-flight publishes to finish
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether Start has been called without a later Stop
func (b *InMemoryEventBus) IsRunning() bool {
	return b.running.Load()
}

// FailureCount returns how many handler invocations have failed or panicked
func (b *InMemoryEventBus) FailureCount() int64 {
	return b.failures.Load()
}

// dispatchToHandler runs one handler, converting a panic into an error
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
