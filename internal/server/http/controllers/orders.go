package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/runtime"
	ordersvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/orders"
	orderstore "github.com/AnshRaj112/mrpizzeria-sub000/internal/store/orders"
)

// OrdersController handles order CRUD, status updates, and history.
type OrdersController struct {
	rt  *runtime.Runtime
	svc *ordersvc.Service
}

// NewOrdersController creates a new orders controller.
func NewOrdersController(rt *runtime.Runtime, svc *ordersvc.Service) *OrdersController {
	return &OrdersController{rt: rt, svc: svc}
}

// RegisterRoutes registers order routes with the given mux.
//
//   - POST /v1/orders            create
//   - GET  /v1/orders            list (status, orderType, limit query params)
//   - GET  /v1/orders/{id}       fetch one
//   - PUT  /v1/orders/{id}       update status, body {"status": "..."}
//   - DELETE /v1/orders/{id}     remove
//   - GET  /v1/orders/{id}/history  status change log
//
// The notification stream under /v1/orders/notifications is owned by the
// notifications controller; its exact-path registration wins over the
// subtree here.
func (c *OrdersController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders", c.handleCollection)
	mux.HandleFunc("/v1/orders/", c.handleItem)
}

func (c *OrdersController) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.handleCreate(w, r)
	case http.MethodGet:
		c.handleList(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *OrdersController) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req ordersvc.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	o, err := c.svc.Create(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, o)
}

func (c *OrdersController) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := orderstore.ListFilter{
		Status: orders.Status(q.Get("status")),
		Type:   orders.Type(q.Get("orderType")),
		Limit:  parseLimit(q.Get("limit")),
	}
	list, err := c.svc.List(f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, map[string]any{"orders": list})
}

func (c *OrdersController) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case sub == "history":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		c.handleHistory(w, id)
	case sub != "":
		writeError(w, http.StatusNotFound, "not found")
	default:
		switch r.Method {
		case http.MethodGet:
			c.handleGet(w, id)
		case http.MethodPut:
			c.handleUpdateStatus(w, r, id)
		case http.MethodDelete:
			c.handleDelete(w, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (c *OrdersController) handleGet(w http.ResponseWriter, id string) {
	o, err := c.svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, o)
}

type statusUpdateReq struct {
	Status orders.Status `json:"status"`
}

func (c *OrdersController) handleUpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req statusUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	o, err := c.svc.UpdateStatus(id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, o)
}

func (c *OrdersController) handleDelete(w http.ResponseWriter, id string) {
	if err := c.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeNoContent(w)
}

func (c *OrdersController) handleHistory(w http.ResponseWriter, id string) {
	hist, err := c.svc.History(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"orderId": id, "history": hist})
}
