package ordering

import (
	"fmt"
	"strings"

	"github.com/kitchencloud/backend/internal/domain/shared"
)

// OrderStatus is a step in the delivery lifecycle
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// lifecycle is ordered; an order only ever moves to a later entry
var lifecycle = []OrderStatus{
	StatusPending,
	StatusAccepted,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

// Statuses returns the lifecycle in order
func Statuses() []OrderStatus {
	out := make([]OrderStatus, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// ParseOrderStatus accepts the lifecycle names case-insensitively.
// Underscores are accepted in place of hyphens ("OUT_FOR_DELIVERY").
func ParseOrderStatus(s string) (OrderStatus, error) {
	normalized := OrderStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !normalized.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown order status %q", s))
	}
	return normalized, nil
}

// IsValid reports whether s is a lifecycle status
func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// CanTransitionTo allows forward moves only, skipping steps is permitted
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	from, to := s.rank(), target.rank()
	return from >= 0 && to > from
}

func (s OrderStatus) rank() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}
