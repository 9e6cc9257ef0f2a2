package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	catalogsvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/catalog"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
)

// CatalogController handles menu items, charges, and discounts.
type CatalogController struct {
	svc *catalogsvc.Service
}

// NewCatalogController creates a new catalog controller.
func NewCatalogController(svc *catalogsvc.Service) *CatalogController {
	return &CatalogController{svc: svc}
}

// RegisterRoutes registers catalog routes with the given mux. Each of the
// three collections follows the same shape:
//
//   - POST /v1/items        create or update
//   - GET  /v1/items        list
//   - GET  /v1/items/{id}   fetch one
//   - DELETE /v1/items/{id} remove
//
// and likewise for /v1/charges and /v1/discounts.
func (c *CatalogController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/items", c.handleItems)
	mux.HandleFunc("/v1/items/", c.handleItem)
	mux.HandleFunc("/v1/charges", c.handleCharges)
	mux.HandleFunc("/v1/charges/", c.handleCharge)
	mux.HandleFunc("/v1/discounts", c.handleDiscounts)
	mux.HandleFunc("/v1/discounts/", c.handleDiscount)
}

func pathID(r *http.Request, prefix string) string {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func (c *CatalogController) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var it catalog.Item
		if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := c.svc.SaveItem(&it); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, it)
	case http.MethodGet:
		list, err := c.svc.ListItems()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if list == nil {
			list = []catalog.Item{}
		}
		writeJSON(w, map[string]any{"items": list})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *CatalogController) handleItem(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/v1/items/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		it, err := c.svc.GetItem(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, it)
	case http.MethodDelete:
		if err := c.svc.DeleteItem(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeNoContent(w)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *CatalogController) handleCharges(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var ch catalog.Charge
		if err := json.NewDecoder(r.Body).Decode(&ch); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := c.svc.SaveCharge(&ch); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, ch)
	case http.MethodGet:
		list, err := c.svc.ListCharges()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if list == nil {
			list = []catalog.Charge{}
		}
		writeJSON(w, map[string]any{"charges": list})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *CatalogController) handleCharge(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/v1/charges/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		ch, err := c.svc.GetCharge(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, ch)
	case http.MethodDelete:
		if err := c.svc.DeleteCharge(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeNoContent(w)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *CatalogController) handleDiscounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var d catalog.Discount
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := c.svc.SaveDiscount(&d); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, d)
	case http.MethodGet:
		list, err := c.svc.ListDiscounts()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if list == nil {
			list = []catalog.Discount{}
		}
		writeJSON(w, map[string]any{"discounts": list})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (c *CatalogController) handleDiscount(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/v1/discounts/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		d, err := c.svc.GetDiscount(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, d)
	case http.MethodDelete:
		if err := c.svc.DeleteDiscount(id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeNoContent(w)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
