package controllers

import (
	"net/http"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/notify"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/runtime"
)

// NotificationsController serves the Server-Sent Events streams.
type NotificationsController struct {
	rt *runtime.Runtime
}

// NewNotificationsController creates a new notifications controller.
func NewNotificationsController(rt *runtime.Runtime) *NotificationsController {
	return &NotificationsController{rt: rt}
}

// RegisterRoutes registers the streaming routes with the given mux.
func (c *NotificationsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders/notifications", c.handleOrderStream)
	mux.HandleFunc("/v1/admin/notifications", c.handleAdminStream)
}

// handleOrderStream streams status updates for one subscription key: either
// a specific order id or a contact number alias. A request naming neither is
// rejected before any subscription is registered.
func (c *NotificationsController) handleOrderStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	var topic string
	switch {
	case q.Get("orderId") != "":
		topic = notify.OrderTopic(q.Get("orderId"))
	case notify.NormalizeContact(q.Get("contact")) != "":
		topic = notify.ContactTopic(q.Get("contact"))
	default:
		writeError(w, http.StatusBadRequest, "orderId or contact query parameter is required")
		return
	}

	cfg := c.rt.Config()
	handshake := notify.Connected("subscribed to order updates", topic)
	serveSSE(w, r, c.rt.Hub(), topic, nil, handshake, cfg.KeepAliveInterval(), cfg.SubscriberBuffer)
}

// handleAdminStream streams new-order announcements, optionally narrowed by
// a CEL filter expression passed in the filter query parameter.
func (c *NotificationsController) handleAdminStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cfg := c.rt.Config()
	expr := r.URL.Query().Get("filter")
	if cfg.MaxFilterLength > 0 && len(expr) > cfg.MaxFilterLength {
		writeError(w, http.StatusBadRequest, "filter expression too long")
		return
	}
	filter, err := notify.NewFilter(expr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter expression: "+err.Error())
		return
	}

	wrap := func(s notify.Sink) notify.Sink { return notify.NewFilterSink(s, filter) }
	handshake := notify.Connected("subscribed to new orders", notify.AdminTopic)
	serveSSE(w, r, c.rt.Hub(), notify.AdminTopic, wrap, handshake, cfg.KeepAliveInterval(), cfg.SubscriberBuffer)
}
