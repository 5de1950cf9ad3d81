// Package rest assembles the storefront HTTP API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
	"github.com/murkotick/storefront-service/internal/transport/rest/account"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
	"github.com/murkotick/storefront-service/internal/transport/rest/middleware"
	"github.com/murkotick/storefront-service/internal/transport/rest/order"
	"github.com/murkotick/storefront-service/internal/transport/rest/product"
)

const readyTimeout = 2 * time.Second

// ReadyFunc reports whether the backing stores are reachable.
type ReadyFunc func(ctx context.Context) error

type Deps struct {
	Log         logrus.FieldLogger
	Metrics     *metrics.Metrics
	Verifier    *auth.Verifier
	RateLimiter *middleware.RateLimiter
	Products    *product.Handler
	Orders      *order.Handler
	Accounts    *account.Handler
	Ready       ReadyFunc
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Tracing, middleware.Metrics(d.Metrics), middleware.Logging(d.Log))

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readyz(d.Ready, d.Log)).Methods(http.MethodGet)
	r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	// Callers are identified first so the limiter can key on the user.
	api.Use(middleware.IdentifyCaller(d.Verifier), d.RateLimiter.Handler)

	authn := middleware.Authenticate(d.Verifier, d.Log)
	admin := func(next http.Handler) http.Handler {
		return authn(middleware.RequireRole(auth.RoleAdmin, d.Log)(next))
	}

	d.Products.Register(api, admin)
	d.Orders.Register(api, authn)
	d.Accounts.Register(api)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorBody{Code: "NotFound", Message: "route not found"})
	})
	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readyz(ready ReadyFunc, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := ready(ctx); err != nil {
				log.WithError(err).Warn("readiness check failed")
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
