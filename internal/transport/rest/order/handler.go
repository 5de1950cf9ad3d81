package order

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-service/internal/app/order/usecases/get_order"
	"github.com/murkotick/storefront-service/internal/app/order/usecases/submit_order"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

type Recorder interface {
	OrderSubmitted(result string)
}

type Handler struct {
	submit  *submit_order.Interactor
	get     *get_order.Handler
	metrics Recorder
	log     logrus.FieldLogger
}

func NewHandler(submit *submit_order.Interactor, get *get_order.Handler, metrics Recorder, log logrus.FieldLogger) *Handler {
	return &Handler{submit: submit, get: get, metrics: metrics, log: log}
}

// Register mounts the order routes behind authn.
func (h *Handler) Register(r *mux.Router, authn func(http.Handler) http.Handler) {
	r.Handle("/api/orders", authn(http.HandlerFunc(h.SubmitOrder))).Methods(http.MethodPost)
	r.Handle("/api/orders/{id}", authn(http.HandlerFunc(h.GetOrder))).Methods(http.MethodGet)
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		httpx.WriteError(w, h.log, auth.ErrMissingToken)
		return
	}

	var req submitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.metrics.OrderSubmitted(resultLabel(err))
		httpx.WriteError(w, h.log, err)
		return
	}

	o, err := h.submit.Execute(r.Context(), mapSubmitRequest(claims.SubjectID(), req))
	h.metrics.OrderSubmitted(resultLabel(err))
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"order_id": o.ID(),
		"user_id":  o.UserID(),
		"total":    o.Totals().Total.String(),
	}).Info("order placed")
	httpx.WriteJSON(w, http.StatusCreated, mapOrder(o))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		httpx.WriteError(w, h.log, auth.ErrMissingToken)
		return
	}

	o, err := h.get.Execute(r.Context(), mux.Vars(r)["id"], get_order.Viewer{
		UserID:  claims.SubjectID(),
		IsAdmin: claims.IsAdmin(),
	})
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapOrder(o))
}

func resultLabel(err error) string {
	if err == nil {
		return "accepted"
	}
	switch httpx.Status(err).Code() {
	case codes.InvalidArgument:
		return "invalid"
	case codes.NotFound, codes.FailedPrecondition:
		return "rejected"
	default:
		return "error"
	}
}
