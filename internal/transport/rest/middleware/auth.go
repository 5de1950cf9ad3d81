package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

// IdentifyCaller stores the claims of a valid bearer token on the request
// context and never rejects. Requests with a missing or bad token pass through
// anonymous; Authenticate decides whether that is allowed.
func IdentifyCaller(v *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header != "" && auth.FromContext(r.Context()) == nil {
				if claims, err := v.Verify(auth.BearerToken(header)); err == nil {
					r = r.WithContext(auth.WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified claims on the request context. Claims already set by
// IdentifyCaller are reused.
func Authenticate(v *auth.Verifier, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.FromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := v.Verify(auth.BearerToken(r.Header.Get("Authorization")))
			if err != nil {
				log.WithError(err).WithField("path", r.URL.Path).Debug("authentication failed")
				httpx.WriteError(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role string, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.FromContext(r.Context())
			if claims == nil {
				httpx.WriteError(w, log, auth.ErrMissingToken)
				return
			}
			if !strings.EqualFold(claims.Role, role) {
				log.WithFields(logrus.Fields{
					"user_id": claims.SubjectID(),
					"role":    claims.Role,
					"path":    r.URL.Path,
				}).Warn("role check failed")
				httpx.WriteError(w, log, auth.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
