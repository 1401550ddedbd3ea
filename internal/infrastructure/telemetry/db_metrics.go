package telemetry

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/metric"
)

// PoolMetrics exports database/sql pool statistics as observable gauges.
type PoolMetrics struct {
	registration metric.Registration
}

// NewPoolMetrics observes db on every collection cycle of meter.
func NewPoolMetrics(meter metric.Meter, db *sql.DB) (*PoolMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if db == nil {
		return nil, &MetricsError{Op: "observe pool", Err: sql.ErrConnDone}
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, err
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := db.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrPoolState.String("idle")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrPoolState.String("open")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, connections, maxOpen, waits)
	if err != nil {
		return nil, err
	}
	return &PoolMetrics{registration: reg}, nil
}

// Stop unregisters the callback.
func (m *PoolMetrics) Stop() error {
	return m.registration.Unregister()
}
