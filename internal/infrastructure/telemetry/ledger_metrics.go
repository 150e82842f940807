package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when LedgerMetrics is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LedgerSnapshotProvider reads current pool totals for the periodic gauges.
// It keeps the telemetry layer independent of the domain packages.
type LedgerSnapshotProvider interface {
	// PoolTotals returns the summed active quantity per pool for a tenant
	PoolTotals(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error)
}

// TenantProvider lists the tenants that currently hold stock.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// LedgerMetricsConfig holds configuration for ledger metrics.
type LedgerMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	Provider        LedgerSnapshotProvider
}

// LedgerMetrics records unit movements between pools and stop transitions.
type LedgerMetrics struct {
	logger *zap.Logger

	unitsMoved      *Counter
	stopTransitions *Counter
	poolUnits       *Gauge

	provider    LedgerSnapshotProvider
	interval    time.Duration
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// NewLedgerMetrics creates the ledger instruments on the given meter.
func NewLedgerMetrics(cfg LedgerMetricsConfig) (*LedgerMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.CollectInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	lm := &LedgerMetrics{
		logger:   logger,
		provider: cfg.Provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}

	var err error
	lm.unitsMoved, err = NewCounter(cfg.Meter,
		"fieldstock_ledger_units_moved_total",
		"Units that entered or left an inventory pool",
		"{units}",
	)
	if err != nil {
		return nil, err
	}
	lm.stopTransitions, err = NewCounter(cfg.Meter,
		"fieldstock_route_stop_transitions_total",
		"Route stop status changes",
		"{transitions}",
	)
	if err != nil {
		return nil, err
	}
	lm.poolUnits, err = NewGauge(cfg.Meter,
		"fieldstock_pool_units",
		"Current active units held per pool",
		"{units}",
	)
	if err != nil {
		return nil, err
	}
	return lm, nil
}

// RecordMovement adds units to the moved counter. Non-positive amounts are ignored.
func (lm *LedgerMetrics) RecordMovement(ctx context.Context, tenantID uuid.UUID, pool, direction string, units int64) {
	if units <= 0 {
		return
	}
	lm.unitsMoved.Add(ctx, units,
		AttrTenantID.String(tenantID.String()),
		AttrPool.String(pool),
		AttrDirection.String(direction),
	)
}

// RecordStopTransition counts a stop entering status.
func (lm *LedgerMetrics) RecordStopTransition(ctx context.Context, tenantID uuid.UUID, status string) {
	lm.stopTransitions.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrStatus.String(status),
	)
}

// RecordPoolUnits sets the pool gauge for a tenant.
func (lm *LedgerMetrics) RecordPoolUnits(ctx context.Context, tenantID uuid.UUID, pool string, units int64) {
	lm.poolUnits.Record(ctx, units,
		AttrTenantID.String(tenantID.String()),
		AttrPool.String(pool),
	)
}

// StartPeriodicCollection starts the pool gauge loop. It is non-blocking
// and only starts once; use Stop to end it.
func (lm *LedgerMetrics) StartPeriodicCollection(ctx context.Context, tenants TenantProvider) {
	lm.collectOnce.Do(func() {
		go lm.runPeriodicCollection(ctx, tenants)
	})
}

func (lm *LedgerMetrics) runPeriodicCollection(ctx context.Context, tenants TenantProvider) {
	ticker := time.NewTicker(lm.interval)
	defer ticker.Stop()

	lm.collect(ctx, tenants)
	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic ledger metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			lm.collect(ctx, tenants)
		}
	}
}

func (lm *LedgerMetrics) collect(ctx context.Context, tenants TenantProvider) {
	if lm.provider == nil || tenants == nil {
		lm.logger.Debug("No ledger snapshot provider configured, skipping collection")
		return
	}
	tenantIDs, err := tenants.GetActiveTenantIDs(ctx)
	if err != nil {
		lm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}
	for _, tenantID := range tenantIDs {
		totals, err := lm.provider.PoolTotals(ctx, tenantID)
		if err != nil {
			lm.logger.Warn("Failed to read pool totals",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		for pool, units := range totals {
			lm.RecordPoolUnits(ctx, tenantID, pool, units)
		}
	}
}

// Stop stops the periodic collection.
func (lm *LedgerMetrics) Stop() {
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}
