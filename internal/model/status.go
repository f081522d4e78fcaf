// status.go
package model

// OrderStatus is the lifecycle state of an order. Persisted as its label.
type OrderStatus string

const (
	StatusProcessing     OrderStatus = "Processing"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusRefunded       OrderStatus = "Refunded"
)

// Allowed transitions: current status -> legal next statuses.
// Cancelled and Refunded are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusRefunded},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// CanTransition reports whether an order may move from current to next.
func CanTransition(current, next OrderStatus) bool {
	for _, s := range statusTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// IsFinal reports whether the status ends the normal lifecycle. Note that
// Delivered still admits Refunded in the transition table; IsFinal is a
// reporting helper, UpdateStatus consults the table only.
func (s OrderStatus) IsFinal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// IsCancellable reports whether a customer may still cancel an order in this
// status.
func (s OrderStatus) IsCancellable() bool {
	return s == StatusProcessing || s == StatusConfirmed || s == StatusShipped
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// ParseOrderStatus maps a persisted or user-supplied label to its status.
func ParseOrderStatus(label string) (OrderStatus, bool) {
	s := OrderStatus(label)
	return s, s.IsValid()
}
