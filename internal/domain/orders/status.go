package orders

// Status represents the current position of an order in its lifecycle.
type Status string

const (
	StatusPending        Status = "pending"
	StatusBeingPrepared  Status = "being_prepared"
	StatusPrepared       Status = "prepared"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusBeingPrepared,
	StatusPrepared,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusBeingPrepared, StatusPrepared,
		StatusReadyForPickup, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool { return s == StatusDelivered }

// CanTransition reports whether from->to follows the documented forward
// progression for the given order type:
//
//	pending -> being_prepared -> prepared -> ready_for_pickup -> delivered  (pickup)
//	pending -> being_prepared -> prepared -> out_for_delivery -> delivered  (delivery)
//	pending -> being_prepared -> prepared -> delivered                      (dine-in)
//
// Only consulted when strict status flow is enabled; the permissive default
// accepts any valid status regardless of the current one.
func CanTransition(from, to Status, typ Type) bool {
	switch from {
	case StatusPending:
		return to == StatusBeingPrepared
	case StatusBeingPrepared:
		return to == StatusPrepared
	case StatusPrepared:
		switch typ {
		case TypeDineIn:
			return to == StatusDelivered
		case TypePickup:
			return to == StatusReadyForPickup
		case TypeDelivery:
			return to == StatusOutForDelivery
		}
		return false
	case StatusReadyForPickup, StatusOutForDelivery:
		return to == StatusDelivered
	}
	return false
}
