package controllers

import (
	"net/http"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/runtime"
	catalogsvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/catalog"
	ordersvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/orders"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general       *GeneralController
	orders        *OrdersController
	catalog       *CatalogController
	notifications *NotificationsController
}

// NewControllerRegistry initializes all controllers with the provided runtime
// and services.
func NewControllerRegistry(rt *runtime.Runtime, orders *ordersvc.Service, cat *catalogsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general:       NewGeneralController(rt),
		orders:        NewOrdersController(rt, orders),
		catalog:       NewCatalogController(cat),
		notifications: NewNotificationsController(rt),
	}
}

// RegisterAllRoutes registers every controller's routes with the given mux.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.orders.RegisterRoutes(mux)
	r.catalog.RegisterRoutes(mux)
	r.notifications.RegisterRoutes(mux)
}
