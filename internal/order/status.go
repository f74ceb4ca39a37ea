package order

// Status is the order lifecycle field. Stored as its string name.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the forward adjacency of the lifecycle. CANCELLED is
// reachable from every non-terminal state and DELIVERED/CANCELLED are
// terminal. Cancel enforces this table; UpdateStatus deliberately does not
// (free-form overwrite is the long-standing admin behavior).
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// ParseStatus maps a status name to its enum value.
func ParseStatus(name string) (Status, error) {
	s := Status(name)
	if _, ok := transitions[s]; !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanTransitionTo reports whether next is adjacent to s in the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order in this status may still be cancelled.
func (s Status) CanCancel() bool {
	return s.CanTransitionTo(StatusCancelled)
}
