package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = &MetricsError{Op: "create", Err: errors.New("meter is nil")}

// MetricsError describes a failed instrument operation.
type MetricsError struct {
	Op  string
	Err error
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("metrics %s: %v", e.Op, e.Err)
}

func (e *MetricsError) Unwrap() error {
	return e.Err
}

// OrderMetrics counts placement outcomes. It satisfies the placement
// service's recorder interface.
type OrderMetrics struct {
	placed       *Counter
	rejected     *Counter
	pointsEarned *Counter
}

// NewOrderMetrics creates the placement instruments on meter.
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	placed, err := NewCounter(meter, "orders_placed_total", "Orders committed", "{order}")
	if err != nil {
		return nil, err
	}
	rejected, err := NewCounter(meter, "order_placements_rejected_total", "Order placements rejected by reason", "{order}")
	if err != nil {
		return nil, err
	}
	points, err := NewCounter(meter, "loyalty_points_earned_total", "Loyalty points credited on house orders", "{point}")
	if err != nil {
		return nil, err
	}
	return &OrderMetrics{placed: placed, rejected: rejected, pointsEarned: points}, nil
}

// RecordOrderPlaced counts a committed order and the points it earned.
func (m *OrderMetrics) RecordOrderPlaced(ctx context.Context, house bool, pointsEarned int64) {
	m.placed.Inc(ctx, AttrHouse.Bool(house))
	if pointsEarned > 0 {
		m.pointsEarned.Add(ctx, pointsEarned)
	}
}

// RecordPlacementRejected counts a rejected placement by error code.
func (m *OrderMetrics) RecordPlacementRejected(ctx context.Context, reason string) {
	m.rejected.Inc(ctx, AttrReason.String(reason))
}
