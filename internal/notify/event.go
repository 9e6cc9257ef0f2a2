package notify

import (
	"time"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
)

// EventType distinguishes the wire event kinds.
type EventType string

const (
	// EventConnected is the synthetic handshake pushed when a stream opens.
	// It never goes through the Hub.
	EventConnected EventType = "connected"
	// EventStatusUpdate announces an accepted order status transition.
	EventStatusUpdate EventType = "status_update"
	// EventNewOrder announces order creation on the admin feed.
	EventNewOrder EventType = "new_order"
)

// Event is the structured payload serialized into a wire frame.
type Event struct {
	Type          EventType    `json:"type"`
	OrderID       string       `json:"orderId,omitempty"`
	DailyOrderID  int64        `json:"dailyOrderId,omitempty"`
	Status        string       `json:"status,omitempty"`
	OrderType     string       `json:"orderType,omitempty"`
	CustomerName  string       `json:"customerName,omitempty"`
	ContactNumber string       `json:"contactNumber,omitempty"`
	Total         orders.Money `json:"total,omitempty"`
	CreatedAt     *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`

	// Handshake-only fields.
	Message         string `json:"message,omitempty"`
	SubscriptionKey string `json:"subscriptionKey,omitempty"`
}

// StatusUpdate builds the status_update event for an order's current state.
func StatusUpdate(o orders.Order) Event {
	updated := o.UpdatedAt
	return Event{
		Type:          EventStatusUpdate,
		OrderID:       o.ID,
		DailyOrderID:  o.DailyOrderID,
		Status:        string(o.Status),
		OrderType:     string(o.Type),
		CustomerName:  o.CustomerName,
		ContactNumber: o.ContactNumber,
		UpdatedAt:     &updated,
	}
}

// NewOrder builds the new_order event published on the admin feed.
func NewOrder(o orders.Order) Event {
	created := o.CreatedAt
	return Event{
		Type:          EventNewOrder,
		OrderID:       o.ID,
		DailyOrderID:  o.DailyOrderID,
		CustomerName:  o.CustomerName,
		ContactNumber: o.ContactNumber,
		OrderType:     string(o.Type),
		Total:         o.Total,
		CreatedAt:     &created,
	}
}

// Connected builds the handshake event written locally on stream open.
func Connected(message, subscriptionKey string) Event {
	return Event{
		Type:            EventConnected,
		Message:         message,
		SubscriptionKey: subscriptionKey,
	}
}
