package domain

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentMethod is how the customer chose to pay
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// statusOrder places the forward statuses on an ordinal scale.
// Cancelled sits outside the scale; it is reachable by escape only.
var statusOrder = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

// CanTransitionTo checks if a status transition is acceptable. The
// check is advisory and permissive: any forward move is allowed,
// including skips (a verified online payment moves Pending directly
// to Processing, an operator may mark Processing Delivered). Cancelled
// is reachable from any non-terminal state. Terminal states admit
// nothing; statuses never move backward.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if newStatus == OrderStatusCancelled {
		return true
	}
	from, ok := statusOrder[s]
	to, newOK := statusOrder[newStatus]
	if !ok || !newOK {
		return false
	}
	return to > from
}

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}
