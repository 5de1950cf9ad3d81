package product

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/product/queries/get_product"
	"github.com/murkotick/storefront-service/internal/app/product/queries/list_products"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

// Commands groups write interactors.
type Commands struct {
	Create *create_product.Interactor
	Update *update_product.Interactor
	Delete *delete_product.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get  *get_product.Handler
	List *list_products.Handler
}

// Handler is a thin HTTP adapter: it decodes and validates input, maps it to
// application requests and delegates.
type Handler struct {
	commands Commands
	queries  Queries
	log      logrus.FieldLogger
}

func NewHandler(cmd Commands, qry Queries, log logrus.FieldLogger) *Handler {
	return &Handler{commands: cmd, queries: qry, log: log}
}

// Register mounts the catalog routes. admin wraps the write routes.
func (h *Handler) Register(r *mux.Router, admin func(http.Handler) http.Handler) {
	r.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.Handle("/api/products", admin(http.HandlerFunc(h.CreateProduct))).Methods(http.MethodPost)
	r.Handle("/api/products/{id}", admin(http.HandlerFunc(h.UpdateProduct))).Methods(http.MethodPut)
	r.Handle("/api/products/{id}", admin(http.HandlerFunc(h.DeleteProduct))).Methods(http.MethodDelete)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	res, err := h.queries.List.Execute(r.Context(), q)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapListResult(res))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.queries.Get.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapProductDTO(p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	if err := validateCreateRequest(req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	details, err := mapCreateRequest(req)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	id, err := h.commands.Create.Execute(r.Context(), create_product.Request{Details: details})
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	h.writeProduct(w, r, http.StatusCreated, id)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateProductID(id); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	if err := validateUpdateRequest(req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	patch, err := mapUpdateRequest(req)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	if err := h.commands.Update.Execute(r.Context(), update_product.Request{ProductID: id, Patch: patch}); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	h.writeProduct(w, r, http.StatusOK, id)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := validateProductID(id); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	if err := h.commands.Delete.Execute(r.Context(), id); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// writeProduct re-reads the committed product so the reply matches storage.
func (h *Handler) writeProduct(w http.ResponseWriter, r *http.Request, code int, id string) {
	p, err := h.queries.Get.Execute(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, code, mapProductDTO(p))
}
